// Package pointerset derives the candidate-pixel index set S from the
// keyed CSPRNG and the image dimensions, exactly reproducible on both
// encode and decode from (K, W*H, t) alone — the central cross-component
// invariant named in spec.md §4.2.
package pointerset

import "fmt"

// Q is the pointer-value space, 2^16.
const Q = 65536

// CapacityError signals that the requested chain length cannot fit in the
// image, spec.md §7's CapacityError.
type CapacityError struct {
	L, WH int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("pointerset: chain length %d exceeds image capacity %d", e.L, e.WH)
}

// floatSource is the single primitive PointerSet construction needs from
// the CSPRNG, letting this package stay independent of the concrete DRBG.
type floatSource interface {
	NextFloatUnit() float64
}

// Size returns |S| = min(floor(Q/t), W*H).
func Size(t, wh int) int {
	s := Q / t
	if s > wh {
		s = wh
	}
	return s
}

// Build constructs S: an ordered sequence of |S| distinct pixel indices in
// [0, W*H), produced deterministically by repeatedly drawing from src and
// rejecting duplicates, per the loop in spec.md §4.2.
func Build(src floatSource, wh, t int) ([]int, error) {
	size := Size(t, wh)
	if size <= 0 {
		return nil, &CapacityError{L: 0, WH: wh}
	}
	s := make([]int, 0, size)
	seen := make(map[int]struct{}, size)
	for len(s) < size {
		i := int(src.NextFloatUnit() * float64(wh))
		if i >= wh {
			i = wh - 1
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		s = append(s, i)
	}
	return s, nil
}

// CheckCapacity returns a *CapacityError if L cannot fit in the image at
// all, independent of t (spec.md §4.2: "Fails with CapacityError if
// L > W*H").
func CheckCapacity(l, wh int) error {
	if l > wh {
		return &CapacityError{L: l, WH: wh}
	}
	return nil
}
