package pixelgrid

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes(4, 4, make([]byte, 10))
	require.Error(t, err)
}

func TestSetGetRoundTrip(t *testing.T) {
	g, err := FromBytes(2, 2, make([]byte, 2*2*4))
	require.NoError(t, err)

	p := Pixel{R: 10, G: 20, B: 30, A: 255}
	g.Set(3, p)
	require.Equal(t, p, g.At(3))
}

func TestPointerRoundTrip(t *testing.T) {
	p := Pixel{R: 1, G: 0, B: 0, A: 255}
	p2 := p.WithPointer(0xABCD)
	require.Equal(t, uint16(0xABCD), p2.Pointer())
	require.EqualValues(t, 0xAB, p2.G)
	require.EqualValues(t, 0xCD, p2.B)
}

func TestNewFromImageMatchesToRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	g := New(img)
	require.Equal(t, 3, g.W)
	require.Equal(t, 2, g.H)
	require.Equal(t, img.Pix, g.ToRGBA().Pix)
}

func TestCloneIsIndependent(t *testing.T) {
	g, err := FromBytes(1, 1, make([]byte, 4))
	require.NoError(t, err)
	clone := g.Clone()
	g.Set(0, Pixel{R: 5, G: 6, B: 7, A: 8})
	require.NotEqual(t, g.At(0), clone.At(0))
}
