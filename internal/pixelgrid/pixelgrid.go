// Package pixelgrid provides the lossless RGBA byte-array view of a cover
// image that the rest of the engine operates on. It never touches PNG/JPEG
// codecs directly; callers hand it a decoded image.RGBA and get back a flat,
// random-access pixel grid.
package pixelgrid

import (
	"fmt"
	"image"
)

// Pixel is the 4-tuple of channel bytes the engine reads and writes.
// R is the payload channel, G/B together hold the 16-bit pointer value
// (high byte in G, low byte in B), and A is never modified by the engine.
type Pixel struct {
	R, G, B, A uint8
}

// Pointer returns the 16-bit big-endian pointer value stored in G,B.
func (p Pixel) Pointer() uint16 {
	return uint16(p.G)<<8 | uint16(p.B)
}

// WithPointer returns a copy of p with G,B set to the big-endian bytes of v.
func (p Pixel) WithPointer(v uint16) Pixel {
	p.G = byte(v >> 8)
	p.B = byte(v)
	return p
}

// Grid is a random-access view over W*H RGBA pixels, row-major, index
// i = y*W + x.
type Grid struct {
	W, H int
	pix  []byte // len == W*H*4, R at offset 0 within each pixel
}

// New builds a Grid from a decoded RGBA image.
func New(img *image.RGBA) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)
	if img.Stride == w*4 && b.Min == (image.Point{}) {
		copy(pix, img.Pix)
	} else {
		for y := 0; y < h; y++ {
			srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pix[y*w*4:(y+1)*w*4], img.Pix[srcOff:srcOff+w*4])
		}
	}
	return &Grid{W: w, H: h, pix: pix}
}

// FromBytes wraps a caller-owned W*H*4 RGBA byte slice directly, matching
// spec.md §6's "black box" RGBA byte grid interface.
func FromBytes(w, h int, pix []byte) (*Grid, error) {
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("pixelgrid: buffer length %d does not match %d*%d*4", len(pix), w, h)
	}
	return &Grid{W: w, H: h, pix: pix}, nil
}

// Len returns the number of pixels, W*H.
func (g *Grid) Len() int { return g.W * g.H }

// At returns the pixel at flat image index i.
func (g *Grid) At(i int) Pixel {
	o := i * 4
	return Pixel{R: g.pix[o], G: g.pix[o+1], B: g.pix[o+2], A: g.pix[o+3]}
}

// Set writes the pixel at flat image index i. A is written unconditionally
// but callers in this codebase never change it, preserving invariant 3 of
// spec.md §3.
func (g *Grid) Set(i int, p Pixel) {
	o := i * 4
	g.pix[o], g.pix[o+1], g.pix[o+2], g.pix[o+3] = p.R, p.G, p.B, p.A
}

// ToRGBA renders the grid back into a stdlib image.RGBA for PNG encoding.
func (g *Grid) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	copy(out.Pix, g.pix)
	return out
}

// Bytes exposes the raw underlying RGBA buffer (read-only use expected).
func (g *Grid) Bytes() []byte { return g.pix }

// Clone returns a deep copy, used by callers that need to diff before/after
// for statistics without re-decoding the source image.
func (g *Grid) Clone() *Grid {
	cp := make([]byte, len(g.pix))
	copy(cp, g.pix)
	return &Grid{W: g.W, H: g.H, pix: cp}
}
