package keycodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixedKeyBytes() []byte {
	k := make([]byte, KeySize)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestSerialiseParseRoundTrip(t *testing.T) {
	wh := 256 * 256
	orig := Key{K: fixedKeyBytes(), T: 13, L: 5000, Pos0: 42}

	s, err := Serialise(orig, wh)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(s), minLen+1)

	parsed, err := Parse(s, wh)
	require.NoError(t, err)
	require.Equal(t, orig, parsed)
}

func TestParseRejectsShortKey(t *testing.T) {
	_, err := Parse("deadbeef", 100)
	require.ErrorIs(t, err, ErrKeyFormat)
}

func TestParseRejectsNonHex(t *testing.T) {
	orig := Key{K: fixedKeyBytes(), T: 1, L: 1, Pos0: 0}
	s, err := Serialise(orig, 100)
	require.NoError(t, err)
	tampered := []byte(s)
	tampered[0] = 'z'
	_, err = Parse(string(tampered), 100)
	require.ErrorIs(t, err, ErrKeyFormat)
}

func TestParseRejectsPos0OutOfRange(t *testing.T) {
	// t=300 makes |S| = floor(Q/t) = 218, strictly less than W*H=256, so
	// PosHexLen(256)'s 2 hex digits can represent pos0 values (e.g. 255)
	// that fall outside the valid |S| range.
	wh := 256
	orig := Key{K: fixedKeyBytes(), T: 300, L: 1, Pos0: 0}
	s, err := Serialise(orig, wh)
	require.NoError(t, err)

	tampered := []byte(s)
	for i := hexKeyLen + hexTLen + hexLLen; i < len(tampered); i++ {
		tampered[i] = 'f'
	}
	_, err = Parse(string(tampered), wh)
	require.ErrorIs(t, err, ErrKeyFormat)
}

func TestParseRejectsZeroAliasCount(t *testing.T) {
	orig := Key{K: fixedKeyBytes(), T: 1, L: 1, Pos0: 0}
	s, err := Serialise(orig, 100)
	require.NoError(t, err)

	tampered := []byte(s)
	for i := hexKeyLen; i < hexKeyLen+hexTLen; i++ {
		tampered[i] = '0'
	}
	require.NotPanics(t, func() {
		_, err = Parse(string(tampered), 100)
	})
	require.ErrorIs(t, err, ErrKeyFormat)
}

func TestParseRejectsZeroChainLength(t *testing.T) {
	orig := Key{K: fixedKeyBytes(), T: 32, L: 1, Pos0: 0}
	s, err := Serialise(orig, 100)
	require.NoError(t, err)

	tampered := []byte(s)
	for i := hexKeyLen + hexTLen; i < hexKeyLen+hexTLen+hexLLen; i++ {
		tampered[i] = '0'
	}
	require.NotPanics(t, func() {
		_, err = Parse(string(tampered), 100)
	})
	require.ErrorIs(t, err, ErrKeyFormat)
}

func TestPosHexLenGrowsWithImageSize(t *testing.T) {
	require.Equal(t, 1, PosHexLen(1))
	require.Equal(t, 2, PosHexLen(256))
	require.Equal(t, 4, PosHexLen(65536))
}

func TestSerialiseRejectsWrongKeyLength(t *testing.T) {
	_, err := Serialise(Key{K: []byte{1, 2, 3}}, 100)
	require.Error(t, err)
}
