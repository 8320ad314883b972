package bed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIntervals_Overlapping(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 100, End: 200},
		{Chrom: "chr1", Start: 150, End: 300},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, Interval{Chrom: "chr1", Start: 100, End: 300}, merged[0])
}

func TestMergeIntervals_Disjoint(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 10, End: 20},
		{Chrom: "chr1", Start: 30, End: 40},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, Interval{Chrom: "chr1", Start: 10, End: 20}, merged[0])
	assert.Equal(t, Interval{Chrom: "chr1", Start: 30, End: 40}, merged[1])
}

func TestMergeIntervals_TouchingAreMerged(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 10, End: 20},
		{Chrom: "chr1", Start: 20, End: 30},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, Interval{Chrom: "chr1", Start: 10, End: 30}, merged[0])
}

func TestMergeIntervals_UnsortedInputWithContainment(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr2", Start: 5, End: 8},
		{Chrom: "chr1", Start: 100, End: 500}, // contains the next two
		{Chrom: "chr1", Start: 150, End: 200},
		{Chrom: "chr1", Start: 400, End: 450},
		{Chrom: "chr1", Start: 600, End: 700},
	})

	require.Len(t, merged, 3)
	assert.Equal(t, Interval{Chrom: "chr1", Start: 100, End: 500}, merged[0])
	assert.Equal(t, Interval{Chrom: "chr1", Start: 600, End: 700}, merged[1])
	assert.Equal(t, Interval{Chrom: "chr2", Start: 5, End: 8}, merged[2])
}

func TestMergeIntervals_EqualStartsTieBreakOnEnd(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 100, End: 300},
		{Chrom: "chr1", Start: 100, End: 150},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, Interval{Chrom: "chr1", Start: 100, End: 300}, merged[0])
}

func TestMergeIntervals_SameCoordinatesDifferentChroms(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 100, End: 200},
		{Chrom: "chr2", Start: 100, End: 200},
	})

	require.Len(t, merged, 2)
}

func TestMergeIntervals_DropsAnnotations(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 100, End: 200, Name: "exon1|NM_1.1|GENE"},
	})

	require.Len(t, merged, 1)
	assert.Empty(t, merged[0].Name)
}

func TestMergeIntervals_Idempotent(t *testing.T) {
	once := MergeIntervals([]Interval{
		{Chrom: "chr1", Start: 100, End: 200},
		{Chrom: "chr1", Start: 150, End: 300},
		{Chrom: "chr1", Start: 500, End: 600},
		{Chrom: "chr2", Start: 10, End: 20},
	})

	twice := MergeIntervals(once)
	assert.Equal(t, once, twice)
}

func TestMergeIntervals_Empty(t *testing.T) {
	assert.Nil(t, MergeIntervals(nil))
}

func TestMerge_File(t *testing.T) {
	dir := t.TempDir()
	bedPath := filepath.Join(dir, "R207_v2.2_GRCh38.bed")

	content := "chr1\t100\t200\texon1|NM_1.1|GENE\nchr1\t150\t300\texon2|NM_1.1|GENE\n"
	require.NoError(t, os.WriteFile(bedPath, []byte(content), 0644))

	mergedPath := filepath.Join(dir, "R207_v2.2_GRCh38_merged.bed")
	got, err := Merge(bedPath, mergedPath)
	require.NoError(t, err)
	assert.Equal(t, mergedPath, got)

	data, err := os.ReadFile(mergedPath)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t300\n", string(data))
}

func TestMerge_MissingInput(t *testing.T) {
	_, err := Merge(filepath.Join(t.TempDir(), "nope.bed"), filepath.Join(t.TempDir(), "out.bed"))
	require.Error(t, err)

	var me *MergeError
	assert.ErrorAs(t, err, &me)
}

func TestMerge_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	bedPath := filepath.Join(dir, "empty.bed")
	require.NoError(t, os.WriteFile(bedPath, nil, 0644))

	_, err := Merge(bedPath, filepath.Join(dir, "out.bed"))
	var me *MergeError
	require.ErrorAs(t, err, &me)
}

func TestMerge_MalformedLine(t *testing.T) {
	dir := t.TempDir()
	bedPath := filepath.Join(dir, "bad.bed")
	require.NoError(t, os.WriteFile(bedPath, []byte("chr1\tnotanumber\t200\n"), 0644))

	_, err := Merge(bedPath, filepath.Join(dir, "out.bed"))
	var me *MergeError
	require.ErrorAs(t, err, &me)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.bed")
	require.NoError(t, os.WriteFile(path, []byte("17\t43044293\t43044685\texon1|NM_007294.4|BRCA1\n\nchr2\t5\t8\n"), 0644))

	ivs, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, ivs, 2)
	assert.Equal(t, Interval{Chrom: "17", Start: 43044293, End: 43044685, Name: "exon1|NM_007294.4|BRCA1"}, ivs[0])
	assert.Equal(t, Interval{Chrom: "chr2", Start: 5, End: 8}, ivs[1])
}
