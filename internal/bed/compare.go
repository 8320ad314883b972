package bed

import "sort"

// Diff holds the interval-level difference between two BED files.
// Comparison is on (chrom, start, end); annotations are ignored so the
// same region annotated differently still counts as present in both.
type Diff struct {
	OnlyInA []Interval
	OnlyInB []Interval
}

// Compare reads two BED files and returns the intervals unique to each.
func Compare(aPath, bPath string) (*Diff, error) {
	a, err := ReadFile(aPath)
	if err != nil {
		return nil, err
	}
	b, err := ReadFile(bPath)
	if err != nil {
		return nil, err
	}

	return compareIntervals(a, b), nil
}

type regionKey struct {
	chrom      string
	start, end int64
}

func compareIntervals(a, b []Interval) *Diff {
	aSet := make(map[regionKey]bool, len(a))
	for _, iv := range a {
		aSet[regionKey{iv.Chrom, iv.Start, iv.End}] = true
	}
	bSet := make(map[regionKey]bool, len(b))
	for _, iv := range b {
		bSet[regionKey{iv.Chrom, iv.Start, iv.End}] = true
	}

	diff := &Diff{}
	seen := make(map[regionKey]bool)
	for _, iv := range a {
		k := regionKey{iv.Chrom, iv.Start, iv.End}
		if !bSet[k] && !seen[k] {
			seen[k] = true
			diff.OnlyInA = append(diff.OnlyInA, iv)
		}
	}
	seen = make(map[regionKey]bool)
	for _, iv := range b {
		k := regionKey{iv.Chrom, iv.Start, iv.End}
		if !aSet[k] && !seen[k] {
			seen[k] = true
			diff.OnlyInB = append(diff.OnlyInB, iv)
		}
	}

	sort.Slice(diff.OnlyInA, func(i, j int) bool { return less(diff.OnlyInA[i], diff.OnlyInA[j]) })
	sort.Slice(diff.OnlyInB, func(i, j int) bool { return less(diff.OnlyInB[i], diff.OnlyInB[j]) })
	return diff
}
