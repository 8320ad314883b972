package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PatrickWeller/panelpal/internal/panelapp"
	"github.com/PatrickWeller/panelpal/internal/pipeline"
	"github.com/PatrickWeller/panelpal/internal/store"
	"github.com/PatrickWeller/panelpal/internal/transcript"
)

func newGenerateBedCmd(logLevel *string) *cobra.Command {
	var (
		panelID      string
		panelVersion string
		genomeBuild  string
		confidence   string
		padding      int64
		merge        bool
		outDir       string
		workers      int
		dbPath       string
		nhsNumber    string
	)

	cmd := &cobra.Command{
		Use:   "generate-bed",
		Short: "Generate a BED file of exon coordinates for a gene panel",
		Long: `Fetch a panel's gene list from PanelApp, resolve each gene to its MANE
Select transcript exons, and write the intervals to a BED file. Genes whose
transcript lookup fails are logged and skipped; the run still succeeds as
long as the panel itself resolves.`,
		Example: `  panelpal generate-bed --panel R207 --panel-version 2.2 --genome-build GRCh38
  panelpal generate-bed --panel R59 --genome-build GRCh37 --padding 25 --merge`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			conf := panelapp.Confidence(confidence)
			if !conf.Valid() {
				return fmt.Errorf("unknown confidence %q: use green, amber, red, or all", confidence)
			}
			if genomeBuild != "GRCh37" && genomeBuild != "GRCh38" {
				return fmt.Errorf("unknown genome build %q: use GRCh37 or GRCh38", genomeBuild)
			}
			if padding < 0 {
				return fmt.Errorf("padding must be non-negative, got %d", padding)
			}

			panels := panelapp.NewClientWithBaseURL(viper.GetString("panelapp.base_url"))
			resolver := transcript.NewResolverWithBaseURL(viper.GetString("transcript.base_url"))
			resolver.SetLogger(logger)

			p := pipeline.New(panels, resolver)
			p.SetLogger(logger)

			res, err := p.Run(cmd.Context(), pipeline.Request{
				PanelID:      panelID,
				PanelVersion: panelVersion,
				GenomeBuild:  genomeBuild,
				Confidence:   conf,
				Padding:      padding,
				Merge:        merge,
				OutDir:       outDir,
				Workers:      workers,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Wrote %s (%d genes, %d skipped)\n", res.BedPath, len(res.Resolved), len(res.Skipped))
			if res.MergedPath != "" {
				fmt.Printf("Wrote %s\n", res.MergedPath)
			}

			if nhsNumber != "" {
				if err := recordRun(dbPath, nhsNumber, genomeBuild, res); err != nil {
					return err
				}
				fmt.Printf("Recorded analysis for patient %s\n", nhsNumber)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&panelID, "panel", "", "Panel identifier, e.g. R207 (required)")
	cmd.Flags().StringVar(&panelVersion, "panel-version", "", "Panel version (default: current)")
	cmd.Flags().StringVar(&genomeBuild, "genome-build", "GRCh38", "Genome build: GRCh37 or GRCh38")
	cmd.Flags().StringVar(&confidence, "confidence", "green", "Gene confidence threshold: green, amber, red, or all")
	cmd.Flags().Int64Var(&padding, "padding", 0, "Symmetric interval padding in base pairs")
	cmd.Flags().BoolVar(&merge, "merge", false, "Also write a merged BED file of disjoint intervals")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent transcript lookups (1 = sequential)")
	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "Patient database path")
	cmd.Flags().StringVar(&nhsNumber, "nhs-number", "", "Record this analysis against a patient NHS number")
	cmd.MarkFlagRequired("panel")

	return cmd
}

// recordRun persists the generated BED file and a panel snapshot against a
// patient in the metadata store.
func recordRun(dbPath, nhsNumber, build string, res *pipeline.Result) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RecordBedFile(store.BedRecord{
		NHSNumber:    nhsNumber,
		AnalysisDate: time.Now(),
		BedPath:      res.BedPath,
		MergedPath:   res.MergedPath,
		PanelID:      res.Panel.ID,
		PanelVersion: res.Panel.Version,
		GenomeBuild:  build,
	}); err != nil {
		return err
	}

	return s.SavePanelSnapshot(res.Panel)
}
