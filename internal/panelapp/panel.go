package panelapp

import "sort"

// Confidence selects which gene tiers a caller wants from a panel.
type Confidence string

const (
	ConfidenceGreen Confidence = "green" // tier 3 only
	ConfidenceAmber Confidence = "amber" // tiers 2-3
	ConfidenceRed   Confidence = "red"   // tiers 1-3
	ConfidenceAll   Confidence = "all"   // tiers 1-3
)

// minTier returns the lowest tier included by the threshold.
func (c Confidence) minTier() int {
	switch c {
	case ConfidenceGreen:
		return 3
	case ConfidenceAmber:
		return 2
	case ConfidenceRed, ConfidenceAll:
		return 1
	}
	return 3
}

// Valid reports whether c names a known confidence threshold.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceGreen, ConfidenceAmber, ConfidenceRed, ConfidenceAll:
		return true
	}
	return false
}

// Gene is a single panel member with its review confidence tier.
type Gene struct {
	Symbol     string
	Confidence int // 1 (red), 2 (amber), 3 (green)
}

// Panel is a gene panel as served by PanelApp.
type Panel struct {
	ID         string // R-number, e.g. "R207"
	Name       string
	PrimaryKey int // numeric database key, used for version lookups
	Version    string
	Genes      []Gene
}

// GeneSymbols returns the deduplicated, sorted symbols of all genes at or
// above the given confidence threshold.
func (p *Panel) GeneSymbols(threshold Confidence) []string {
	min := threshold.minTier()

	seen := make(map[string]bool, len(p.Genes))
	var symbols []string
	for _, g := range p.Genes {
		if g.Confidence < min || seen[g.Symbol] {
			continue
		}
		seen[g.Symbol] = true
		symbols = append(symbols, g.Symbol)
	}

	sort.Strings(symbols)
	return symbols
}

// TierCounts returns how many genes sit in each confidence tier (index 1-3).
func (p *Panel) TierCounts() [4]int {
	var counts [4]int
	for _, g := range p.Genes {
		if g.Confidence >= 1 && g.Confidence <= 3 {
			counts[g.Confidence]++
		}
	}
	return counts
}

// GeneDiff holds the gene-list difference between two panel versions.
type GeneDiff struct {
	Added   []string // present in new, absent in old
	Removed []string // present in old, absent in new
}

// DiffGeneLists compares the gene lists of two panels at the given
// confidence threshold.
func DiffGeneLists(old, new *Panel, threshold Confidence) GeneDiff {
	oldSet := make(map[string]bool)
	for _, s := range old.GeneSymbols(threshold) {
		oldSet[s] = true
	}
	newSet := make(map[string]bool)
	for _, s := range new.GeneSymbols(threshold) {
		newSet[s] = true
	}

	var diff GeneDiff
	for s := range newSet {
		if !oldSet[s] {
			diff.Added = append(diff.Added, s)
		}
	}
	for s := range oldSet {
		if !newSet[s] {
			diff.Removed = append(diff.Removed, s)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	return diff
}
