package transcript

// GeneData is one gene object from the gene2transcripts response.
// Any nested field may be absent for a given gene or transcript; consumers
// must treat missing structure as "no exon data", not as an error.
type GeneData struct {
	CurrentSymbol string       `json:"current_symbol"`
	HGNC          string       `json:"hgnc"`
	Transcripts   []Transcript `json:"transcripts"`
}

// Transcript is one transcript model for a gene.
type Transcript struct {
	Reference    string                 `json:"reference"`
	Annotations  map[string]any         `json:"annotations"`
	GenomicSpans map[string]GenomicSpan `json:"genomic_spans"`
}

// Chromosome returns the transcript's annotated chromosome name, or
// "Unknown" when the annotation is absent.
func (t *Transcript) Chromosome() string {
	if t.Annotations != nil {
		if c, ok := t.Annotations["chromosome"].(string); ok && c != "" {
			return c
		}
	}
	return "Unknown"
}

// GenomicSpan is one alignment of a transcript to a reference sequence,
// keyed in the response by the RefSeq chromosome accession.
type GenomicSpan struct {
	Orientation   int    `json:"orientation"`
	TotalExons    int    `json:"total_exons"`
	ExonStructure []Exon `json:"exon_structure"`
}

// Exon is a single exon within a genomic span. Coordinates are 1-based
// inclusive, as served by the API.
type Exon struct {
	ExonNumber   int   `json:"exon_number"`
	GenomicStart int64 `json:"genomic_start"`
	GenomicEnd   int64 `json:"genomic_end"`
}

// ExonRecord is a flattened exon with everything a BED line needs.
// Start/End remain 1-based inclusive; the BED writer does the 0-basing.
type ExonRecord struct {
	Chrom      string
	Start      int64
	End        int64
	ExonNumber int
	Transcript string
	GeneSymbol string
}

// Extract flattens a gene2transcripts response into exon records.
// Genes or transcripts lacking exon structure contribute zero records.
func Extract(genes []GeneData) []ExonRecord {
	var records []ExonRecord

	for _, g := range genes {
		symbol := g.CurrentSymbol
		if symbol == "" {
			symbol = "Unknown"
		}

		for _, t := range g.Transcripts {
			chrom := t.Chromosome()
			ref := t.Reference
			if ref == "" {
				ref = "Unknown"
			}

			for _, span := range t.GenomicSpans {
				for _, e := range span.ExonStructure {
					records = append(records, ExonRecord{
						Chrom:      chrom,
						Start:      e.GenomicStart,
						End:        e.GenomicEnd,
						ExonNumber: e.ExonNumber,
						Transcript: ref,
						GeneSymbol: symbol,
					})
				}
			}
		}
	}

	return records
}
