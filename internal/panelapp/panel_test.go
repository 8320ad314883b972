package panelapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPanel() *Panel {
	return &Panel{
		ID:      "R207",
		Version: "2.2",
		Genes: []Gene{
			{Symbol: "BRCA1", Confidence: 3},
			{Symbol: "BRCA2", Confidence: 3},
			{Symbol: "RAD51C", Confidence: 2},
			{Symbol: "NBN", Confidence: 1},
			{Symbol: "BRCA1", Confidence: 3}, // duplicate entry
		},
	}
}

func TestGeneSymbols_Thresholds(t *testing.T) {
	p := testPanel()

	assert.Equal(t, []string{"BRCA1", "BRCA2"}, p.GeneSymbols(ConfidenceGreen))
	assert.Equal(t, []string{"BRCA1", "BRCA2", "RAD51C"}, p.GeneSymbols(ConfidenceAmber))
	assert.Equal(t, []string{"BRCA1", "BRCA2", "NBN", "RAD51C"}, p.GeneSymbols(ConfidenceRed))
	assert.Equal(t, []string{"BRCA1", "BRCA2", "NBN", "RAD51C"}, p.GeneSymbols(ConfidenceAll))
}

func TestConfidence_Valid(t *testing.T) {
	assert.True(t, ConfidenceGreen.Valid())
	assert.True(t, ConfidenceAmber.Valid())
	assert.True(t, ConfidenceRed.Valid())
	assert.True(t, ConfidenceAll.Valid())
	assert.False(t, Confidence("purple").Valid())
}

func TestTierCounts(t *testing.T) {
	counts := testPanel().TierCounts()
	assert.Equal(t, 3, counts[3]) // duplicate BRCA1 counted per entry
	assert.Equal(t, 1, counts[2])
	assert.Equal(t, 1, counts[1])
}

func TestDiffGeneLists(t *testing.T) {
	old := &Panel{Genes: []Gene{
		{Symbol: "BRCA1", Confidence: 3},
		{Symbol: "ATM", Confidence: 3},
	}}
	new := &Panel{Genes: []Gene{
		{Symbol: "BRCA1", Confidence: 3},
		{Symbol: "PALB2", Confidence: 3},
	}}

	diff := DiffGeneLists(old, new, ConfidenceGreen)
	assert.Equal(t, []string{"PALB2"}, diff.Added)
	assert.Equal(t, []string{"ATM"}, diff.Removed)
}

func TestDiffGeneLists_ThresholdChangesMembership(t *testing.T) {
	old := &Panel{Genes: []Gene{{Symbol: "NBN", Confidence: 3}}}
	new := &Panel{Genes: []Gene{{Symbol: "NBN", Confidence: 1}}}

	// NBN drops below the green threshold in the new version.
	diff := DiffGeneLists(old, new, ConfidenceGreen)
	assert.Empty(t, diff.Added)
	assert.Equal(t, []string{"NBN"}, diff.Removed)

	// At "all" it is present in both.
	diff = DiffGeneLists(old, new, ConfidenceAll)
	assert.Empty(t, diff.Added)
	assert.Empty(t, diff.Removed)
}
