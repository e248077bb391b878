package chain

import (
	"errors"

	"chainstego/internal/pixelgrid"
)

// ErrInvalidPos0 is returned when the deserialised pos0 does not index
// into the reconstructed candidate set S, per spec.md §7's
// "pos₀ ≥ |S|" KeyFormatError example.
var ErrInvalidPos0 = errors.New("chain: pos0 out of range for candidate set")

// Walk reconstructs the ciphertext by following the chain forward from
// S[pos0] for l steps, per spec.md §4.4. It performs no mutation; grid is
// read-only from the walker's perspective. onByte, if non-nil, is called
// once per byte read and may return a non-nil error to abort early (e.g.
// from a cancelled context).
func Walk(key []byte, grid *pixelgrid.Grid, s []int, pos0, l int, onByte func(done, total int) error) ([]byte, error) {
	if pos0 < 0 || pos0 >= len(s) {
		return nil, ErrInvalidPos0
	}
	c := make([]byte, l)
	cur := s[pos0]
	for i := 0; i < l; i++ {
		px := grid.At(cur)
		c[i] = px.R
		p := px.Pointer()
		nextPos := Next(key, p, len(s))
		cur = s[nextPos]
		if onByte != nil {
			if err := onByte(i+1, l); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
