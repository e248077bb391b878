package chain

import (
	"errors"
	"sort"

	"chainstego/internal/pixelgrid"
)

// ErrExhaustedCandidates signals the invariant-violation failure mode of
// spec.md §4.3 step 5: no unused candidate remained during backward
// extension. Practically impossible when |S| >= L, per spec, but the check
// is mandatory.
var ErrExhaustedCandidates = errors.New("chain: exhausted candidates")

// Build walks the ciphertext backward over S, choosing per-byte pixels and
// pointers under the chaining relation while minimising distortion, per
// spec.md §4.3 phases 2-4. It mutates grid in place and returns pos0, the
// position in S of the first chain node.
//
// s is the candidate set (already constructed by pointerset.Build). onByte,
// if non-nil, is called once per ciphertext byte processed (in backward
// order) so callers can drive a progress sink at "encode-bytes" fraction
// granularity, per spec.md §6, and can return a non-nil error (e.g. from a
// cancelled context) to abort the walk at that yield point.
func Build(key []byte, grid *pixelgrid.Grid, s []int, ciphertext []byte, onByte func(done, total int) error) (pos0 int, err error) {
	l := len(ciphertext)
	if l == 0 {
		return 0, nil
	}
	if l > len(s) {
		return 0, ErrExhaustedCandidates
	}

	used := make([]bool, len(s))
	table := BuildPointerTable(key, len(s))
	posOf := make([]int, l)

	// Phase 2: seed the last chain node.
	lastByte := ciphertext[l-1]
	bestPos, bestDiff := -1, 1<<30
	for pos, imgIdx := range s {
		diff := absDiff(grid.At(imgIdx).R, lastByte)
		if diff < bestDiff {
			bestDiff, bestPos = diff, pos
		}
	}
	if bestPos == -1 {
		return 0, ErrExhaustedCandidates
	}
	commit(grid, s[bestPos], lastByte, grid.At(s[bestPos]).Pointer())
	used[bestPos] = true
	posOf[l-1] = bestPos
	if onByte != nil {
		if err := onByte(1, l); err != nil {
			return 0, err
		}
	}

	// Phase 3: backward chain extension.
	for i := l - 2; i >= 0; i-- {
		target := ciphertext[i]
		nextPos := posOf[i+1]
		validPointers := table.ValidPointers(nextPos)

		ordered := orderedCandidates(grid, s, used, target)

		chosenPos, chosenP, ok := pickCandidate(grid, s, ordered, validPointers, target, nextPos, table)
		if !ok {
			return 0, ErrExhaustedCandidates
		}

		commit(grid, s[chosenPos], target, chosenP)
		used[chosenPos] = true
		posOf[i] = chosenPos
		if onByte != nil {
			if err := onByte(l-i, l); err != nil {
				return 0, err
			}
		}
	}

	return posOf[0], nil
}

// orderedCandidates returns unused positions in S ordered per spec.md
// §4.3 step 2: exact R-matches first (in S order), then the remainder
// sorted by ascending |R - target|, ties broken by earlier S position
// (sort.SliceStable over an already S-ordered slice preserves that).
func orderedCandidates(grid *pixelgrid.Grid, s []int, used []bool, target byte) []int {
	exact := make([]int, 0, len(s))
	type scored struct {
		pos  int
		diff int
	}
	rest := make([]scored, 0, len(s))

	for pos, imgIdx := range s {
		if used[pos] {
			continue
		}
		diff := absDiff(grid.At(imgIdx).R, target)
		if diff == 0 {
			exact = append(exact, pos)
		} else {
			rest = append(rest, scored{pos, diff})
		}
	}
	sort.SliceStable(rest, func(a, b int) bool { return rest[a].diff < rest[b].diff })

	ordered := make([]int, 0, len(exact)+len(rest))
	ordered = append(ordered, exact...)
	for _, c := range rest {
		ordered = append(ordered, c.pos)
	}
	return ordered
}

// pickCandidate walks the ordered candidate list, returning the first
// perfect match (distortion 0) it finds, or otherwise the globally
// minimal-distance (position, pointer) pair across the whole list.
func pickCandidate(grid *pixelgrid.Grid, s []int, ordered []int, validPointers []uint16, target byte, nextPos int, table *PointerTable) (pos int, p uint16, ok bool) {
	bestDist := -1.0
	bestPos, bestP := -1, uint16(0)

	for _, cand := range ordered {
		imgIdx := s[cand]
		px := grid.At(imgIdx)
		pOrig := px.Pointer()

		if px.R == target && table.Next(pOrig) == nextPos {
			return cand, pOrig, true
		}

		for _, cp := range validPointers {
			d := Score(px, target, cp)
			if bestDist < 0 || d < bestDist {
				bestDist, bestPos, bestP = d, cand, cp
			}
		}
	}

	if bestPos == -1 {
		return 0, 0, false
	}
	return bestPos, bestP, true
}

func commit(grid *pixelgrid.Grid, imgIdx int, r byte, p uint16) {
	px := grid.At(imgIdx)
	px.R = r
	px = px.WithPointer(p)
	grid.Set(imgIdx, px)
}

func absDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
