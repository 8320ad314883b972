// Package bed converts exon records into BED interval files and merges
// overlapping intervals.
package bed

import (
	"fmt"

	"github.com/PatrickWeller/panelpal/internal/transcript"
)

// Interval is a zero-based, half-open genomic interval. Name carries the
// per-exon annotation and is empty on merged intervals.
type Interval struct {
	Chrom string
	Start int64 // inclusive, 0-based
	End   int64 // exclusive
	Name  string
}

// FromExon converts a 1-based inclusive exon record to a BED interval,
// applying symmetric padding. The start is clamped at 0; the end is never
// clamped. The annotation concatenates exon number, transcript reference,
// and gene symbol with pipes.
func FromExon(rec transcript.ExonRecord, padding int64) Interval {
	start := rec.Start - 1 - padding
	if start < 0 {
		start = 0
	}

	return Interval{
		Chrom: rec.Chrom,
		Start: start,
		End:   rec.End + padding,
		Name:  fmt.Sprintf("exon%d|%s|%s", rec.ExonNumber, rec.Transcript, rec.GeneSymbol),
	}
}

// less orders intervals by (chrom, start, end) ascending.
func less(a, b Interval) bool {
	if a.Chrom != b.Chrom {
		return a.Chrom < b.Chrom
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}
