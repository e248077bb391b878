package chain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chainstego/internal/pixelgrid"
	"chainstego/internal/pointerset"
	"chainstego/internal/prng"
)

func fixedKey() []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = byte(i * 7)
	}
	return k
}

func filledGrid(w, h int, fill byte) *pixelgrid.Grid {
	buf := make([]byte, w*h*4)
	for i := range buf {
		buf[i] = fill
	}
	g, err := pixelgrid.FromBytes(w, h, buf)
	if err != nil {
		panic(err)
	}
	return g
}

func TestBuildWalkRoundTrip(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(16, 16, 128)
	wh := grid.Len()

	s, err := pointerset.Build(prng.NewFromHexKey("00"), wh, 32)
	require.NoError(t, err)

	ciphertext := []byte("hi")

	pos0, err := Build(key, grid, s, ciphertext, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, pos0, 0)
	require.Less(t, pos0, len(s))

	recovered, err := Walk(key, grid, s, pos0, len(ciphertext), nil)
	require.NoError(t, err)
	require.Equal(t, ciphertext, recovered)
}

func TestBuildPreservesAlpha(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(16, 16, 128)
	before := grid.Clone()
	wh := grid.Len()

	s, err := pointerset.Build(prng.NewFromHexKey("00"), wh, 32)
	require.NoError(t, err)

	_, err = Build(key, grid, s, []byte("payload"), nil)
	require.NoError(t, err)

	for i := 0; i < wh; i++ {
		require.Equal(t, before.At(i).A, grid.At(i).A)
	}
}

func TestBuildExactRChannel(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(16, 16, 200)
	wh := grid.Len()

	s, err := pointerset.Build(prng.NewFromHexKey("00"), wh, 32)
	require.NoError(t, err)

	ciphertext := []byte{1, 2, 3, 4, 5}
	pos0, err := Build(key, grid, s, ciphertext, nil)
	require.NoError(t, err)

	cur := s[pos0]
	for i := 0; i < len(ciphertext); i++ {
		px := grid.At(cur)
		require.Equal(t, ciphertext[i], px.R)
		cur = s[Next(key, px.Pointer(), len(s))]
	}
}

func TestPointerRelationHolds(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(16, 16, 128)
	wh := grid.Len()

	s, err := pointerset.Build(prng.NewFromHexKey("00"), wh, 32)
	require.NoError(t, err)

	payload := []byte("abc")
	pos0, err := Build(key, grid, s, payload, nil)
	require.NoError(t, err)

	cur := s[pos0]
	for i := 0; i < 2; i++ {
		px := grid.At(cur)
		nextPos := Next(key, px.Pointer(), len(s))
		cur = s[nextPos]
		require.Equal(t, payload[i+1], grid.At(cur).R)
	}
}

func TestBuildExhaustedWhenTooLong(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(2, 2, 128)
	s := []int{0, 1, 2, 3}

	_, err := Build(key, grid, s, make([]byte, 5), nil)
	require.ErrorIs(t, err, ErrExhaustedCandidates)
}

func TestWalkRejectsOutOfRangePos0(t *testing.T) {
	key := fixedKey()
	grid := filledGrid(2, 2, 128)
	s := []int{0, 1, 2, 3}

	_, err := Walk(key, grid, s, 10, 1, nil)
	require.ErrorIs(t, err, ErrInvalidPos0)
}

func TestPointerTableCoversAllPointers(t *testing.T) {
	key := fixedKey()
	table := BuildPointerTable(key, 100)
	total := 0
	for pos := 0; pos < 100; pos++ {
		total += len(table.ValidPointers(pos))
	}
	require.Equal(t, pointerset.Q, total)
}
