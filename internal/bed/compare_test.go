package bed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompare(t *testing.T) {
	a := writeBed(t, "a.bed", "chr1\t100\t200\tx\nchr1\t300\t400\ty\n")
	b := writeBed(t, "b.bed", "chr1\t100\t200\tz\nchr2\t50\t60\n")

	diff, err := Compare(a, b)
	require.NoError(t, err)

	require.Len(t, diff.OnlyInA, 1)
	assert.Equal(t, "chr1", diff.OnlyInA[0].Chrom)
	assert.Equal(t, int64(300), diff.OnlyInA[0].Start)

	require.Len(t, diff.OnlyInB, 1)
	assert.Equal(t, "chr2", diff.OnlyInB[0].Chrom)
}

func TestCompare_AnnotationsIgnored(t *testing.T) {
	a := writeBed(t, "a.bed", "chr1\t100\t200\texon1|NM_1.1|GENE\n")
	b := writeBed(t, "b.bed", "chr1\t100\t200\texon1|NM_2.2|OTHER\n")

	diff, err := Compare(a, b)
	require.NoError(t, err)
	assert.Empty(t, diff.OnlyInA)
	assert.Empty(t, diff.OnlyInB)
}

func TestCompare_DuplicateIntervalsReportedOnce(t *testing.T) {
	a := writeBed(t, "a.bed", "chr1\t1\t2\nchr1\t1\t2\n")
	b := writeBed(t, "b.bed", "chr2\t1\t2\n")

	diff, err := Compare(a, b)
	require.NoError(t, err)
	assert.Len(t, diff.OnlyInA, 1)
}
