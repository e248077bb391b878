package chain

import (
	"math"

	"chainstego/internal/pixelgrid"
)

// Score computes the Euclidean distance in RGBA-space between a pixel's
// original value and its hypothetical modified value (R := targetByte,
// pointer := p, A unchanged). A always contributes 0 since the engine never
// touches it, per spec.md §4.5. Exposed as a pure scoring function so the
// outer search in Build is a plain min-by over an explicit iterator
// (spec.md §9's "distortion search as a pure scoring function" pattern).
func Score(original pixelgrid.Pixel, targetByte byte, p uint16) float64 {
	modified := original
	modified.R = targetByte
	modified = modified.WithPointer(p)
	return distance(original, modified)
}

func distance(a, b pixelgrid.Pixel) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	da := float64(a.A) - float64(b.A)
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}
