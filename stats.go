package chainstego

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"chainstego/internal/pixelgrid"
)

// Stats is the encode-completion statistics struct of spec.md §6.
type Stats struct {
	TotalPixels       int
	ChainLength       int
	ModifiedPositions int
	ModifiedChannels  int
	PercentModified   float64
}

// String renders a human-readable summary using go-humanize for the pixel
// counts, the way a CLI reporting these numbers to a terminal would.
func (s Stats) String() string {
	return fmt.Sprintf(
		"%s / %s pixels modified (%s%%), chain length %s, %s channel bytes changed",
		humanize.Comma(int64(s.ModifiedPositions)),
		humanize.Comma(int64(s.TotalPixels)),
		humanize.FtoaWithDigits(s.PercentModified, 2),
		humanize.Comma(int64(s.ChainLength)),
		humanize.Comma(int64(s.ModifiedChannels)),
	)
}

// computeStats diffs before and after grids to produce Stats, per
// spec.md §6: "number of positions actually modified (R, G, or B differs
// from original), total modified channel count, percentage of image
// pixels modified".
func computeStats(before, after *pixelgrid.Grid, chainLength int) Stats {
	total := after.Len()
	modifiedPositions := 0
	modifiedChannels := 0
	for i := 0; i < total; i++ {
		b, a := before.At(i), after.At(i)
		changed := 0
		if b.R != a.R {
			changed++
		}
		if b.G != a.G {
			changed++
		}
		if b.B != a.B {
			changed++
		}
		if changed > 0 {
			modifiedPositions++
			modifiedChannels += changed
		}
	}
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(modifiedPositions) / float64(total)
	}
	return Stats{
		TotalPixels:       total,
		ChainLength:       chainLength,
		ModifiedPositions: modifiedPositions,
		ModifiedChannels:  modifiedChannels,
		PercentModified:   pct,
	}
}
