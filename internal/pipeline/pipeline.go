// Package pipeline sequences panel lookup, transcript resolution, and BED
// file generation for a single panel run.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/PatrickWeller/panelpal/internal/bed"
	"github.com/PatrickWeller/panelpal/internal/panelapp"
	"github.com/PatrickWeller/panelpal/internal/transcript"
)

// PanelLookup is the panel database boundary consumed by the pipeline.
type PanelLookup interface {
	GetPanel(ctx context.Context, panelID string) (*panelapp.Panel, error)
	GetPanelVersion(ctx context.Context, primaryKey int, version string) (*panelapp.Panel, error)
}

// TranscriptResolver is the transcript API boundary consumed by the pipeline.
type TranscriptResolver interface {
	Resolve(ctx context.Context, gene, build string) ([]transcript.GeneData, error)
}

// Request describes one panel-to-BED run.
type Request struct {
	PanelID      string
	PanelVersion string // empty means the panel's current version
	GenomeBuild  string
	Confidence   panelapp.Confidence
	Padding      int64
	Merge        bool
	OutDir       string
	Workers      int // transcript resolution fan-out; <=1 means sequential
}

// Result summarizes a completed run. Skipped lists genes whose transcript
// resolution failed; their absence from the BED file is not a run failure.
type Result struct {
	Panel      *panelapp.Panel
	BedPath    string
	MergedPath string
	Resolved   []string
	Skipped    []string
}

// Pipeline wires the panel and transcript boundaries to the BED writer.
type Pipeline struct {
	panels   PanelLookup
	resolver TranscriptResolver
	logger   *zap.Logger
}

// New creates a pipeline over the given collaborators.
func New(panels PanelLookup, resolver TranscriptResolver) *Pipeline {
	return &Pipeline{
		panels:   panels,
		resolver: resolver,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for per-gene warnings and the run summary.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Run executes the full pipeline for one panel. Per-gene resolution
// failures are logged and skipped; only pipeline-level preconditions
// (panel not found, zero genes resolved, file I/O, merge failure) return
// an error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	panel, err := p.lookupPanel(ctx, req)
	if err != nil {
		return nil, err
	}

	genes := panel.GeneSymbols(req.Confidence)
	if len(genes) == 0 {
		return nil, fmt.Errorf("panel %s v%s has no genes at confidence %q", req.PanelID, panel.Version, req.Confidence)
	}

	p.logger.Info("panel resolved",
		zap.String("panel", req.PanelID),
		zap.String("version", panel.Version),
		zap.Int("genes", len(genes)))

	res := &Result{Panel: panel}

	bedPath := filepath.Join(req.OutDir, bed.Filename(req.PanelID, panel.Version, req.GenomeBuild))
	w, err := bed.NewWriter(bedPath)
	if err != nil {
		return nil, err
	}

	err = p.resolveAll(ctx, genes, req, func(r GeneResult) error {
		if r.Err != nil {
			p.logger.Warn("skipping gene",
				zap.String("gene", r.Gene),
				zap.Error(r.Err))
			res.Skipped = append(res.Skipped, r.Gene)
			return nil
		}

		records := transcript.Extract(r.Genes)
		for _, rec := range records {
			if err := w.Write(bed.FromExon(rec, req.Padding)); err != nil {
				return err
			}
		}
		res.Resolved = append(res.Resolved, r.Gene)
		return nil
	})
	if err != nil {
		w.Close()
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	res.BedPath = bedPath

	if len(res.Resolved) == 0 {
		return nil, fmt.Errorf("no genes resolved for panel %s: all %d lookups failed", req.PanelID, len(genes))
	}

	if req.Merge {
		mergedPath := filepath.Join(req.OutDir, bed.MergedFilename(req.PanelID, panel.Version, req.GenomeBuild))
		if _, err := bed.Merge(bedPath, mergedPath); err != nil {
			return nil, err
		}
		res.MergedPath = mergedPath
	}

	p.logger.Info("pipeline complete",
		zap.String("panel", req.PanelID),
		zap.Int("resolved", len(res.Resolved)),
		zap.Int("skipped", len(res.Skipped)),
		zap.String("bed", res.BedPath))

	return res, nil
}

func (p *Pipeline) lookupPanel(ctx context.Context, req Request) (*panelapp.Panel, error) {
	panel, err := p.panels.GetPanel(ctx, req.PanelID)
	if err != nil {
		return nil, err
	}

	if req.PanelVersion == "" || req.PanelVersion == panel.Version {
		return panel, nil
	}
	return p.panels.GetPanelVersion(ctx, panel.PrimaryKey, req.PanelVersion)
}
