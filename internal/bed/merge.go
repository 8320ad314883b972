package bed

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// MergeError reports that the merge step could not run at all, as opposed
// to a per-gene skip upstream.
type MergeError struct {
	Path string
	Err  error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge %s: %v", e.Path, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// MergeIntervals sorts intervals by (chrom, start, end) and collapses
// overlapping or touching intervals into maximal disjoint intervals.
// Annotations are dropped; merged intervals lose per-exon identity.
// The operation is idempotent.
func MergeIntervals(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	merged := make([]Interval, 0, len(sorted))
	cur := Interval{Chrom: sorted[0].Chrom, Start: sorted[0].Start, End: sorted[0].End}

	for _, iv := range sorted[1:] {
		if iv.Chrom == cur.Chrom && iv.Start <= cur.End {
			if iv.End > cur.End {
				cur.End = iv.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = Interval{Chrom: iv.Chrom, Start: iv.Start, End: iv.End}
	}

	return append(merged, cur)
}

// Merge reads the BED file at bedPath, merges its intervals, and writes the
// 3-column result to mergedPath. Returns the output path. Unreadable input
// or malformed lines surface as a *MergeError.
func Merge(bedPath, mergedPath string) (string, error) {
	ivs, err := ReadFile(bedPath)
	if err != nil {
		return "", &MergeError{Path: bedPath, Err: err}
	}
	if len(ivs) == 0 {
		return "", &MergeError{Path: bedPath, Err: fmt.Errorf("no intervals to merge")}
	}

	w, err := NewWriter(mergedPath)
	if err != nil {
		return "", &MergeError{Path: mergedPath, Err: err}
	}

	if err := w.WriteAll(MergeIntervals(ivs)); err != nil {
		w.Close()
		return "", &MergeError{Path: mergedPath, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &MergeError{Path: mergedPath, Err: err}
	}

	return mergedPath, nil
}

// ReadFile parses a BED file into intervals. The 4th column, when present,
// becomes the interval Name; further columns are ignored.
func ReadFile(path string) ([]Interval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bed file: %w", err)
	}
	defer f.Close()

	var ivs []Interval
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		iv, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		ivs = append(ivs, iv)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bed file: %w", err)
	}

	return ivs, nil
}

func parseLine(line string) (Interval, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return Interval{}, fmt.Errorf("expected at least 3 tab-separated columns, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("bad start %q: %w", fields[1], err)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Interval{}, fmt.Errorf("bad end %q: %w", fields[2], err)
	}

	iv := Interval{Chrom: fields[0], Start: start, End: end}
	if len(fields) > 3 {
		iv.Name = fields[3]
	}
	return iv, nil
}
