package pointerset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chainstego/internal/prng"
)

func TestSize(t *testing.T) {
	require.Equal(t, 2048, Size(32, 1_000_000))
	require.Equal(t, 256, Size(32, 256)) // capped by W*H
}

func TestBuildProducesDistinctIndices(t *testing.T) {
	d := prng.New([]byte("seed"))
	s, err := Build(d, 1000, 32)
	require.NoError(t, err)
	require.Equal(t, Size(32, 1000), len(s))

	seen := make(map[int]bool)
	for _, i := range s {
		require.False(t, seen[i], "duplicate index %d", i)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 1000)
		seen[i] = true
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(prng.New([]byte("k")), 4096, 8)
	require.NoError(t, err)
	b, err := Build(prng.New([]byte("k")), 4096, 8)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBuildFailsWhenNoRoomAtAll(t *testing.T) {
	_, err := Build(prng.New([]byte("k")), 0, 1)
	require.Error(t, err)
}

func TestCheckCapacity(t *testing.T) {
	require.NoError(t, CheckCapacity(16, 16))
	require.Error(t, CheckCapacity(17, 16))
}
