package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PatrickWeller/panelpal/internal/bed"
	"github.com/PatrickWeller/panelpal/internal/panelapp"
)

func newComparePanelVersionsCmd() *cobra.Command {
	var (
		panelID    string
		versions   []string
		confidence string
	)

	cmd := &cobra.Command{
		Use:   "compare-panel-versions",
		Short: "Show genes added and removed between two panel versions",
		Example: `  panelpal compare-panel-versions --panel R207 --versions 1.0 2.2
  panelpal compare-panel-versions --panel R59 --versions 1.1 1.4 --confidence amber`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(versions) != 2 {
				return fmt.Errorf("--versions needs exactly two values, got %d", len(versions))
			}
			conf := panelapp.Confidence(confidence)
			if !conf.Valid() {
				return fmt.Errorf("unknown confidence %q: use green, amber, red, or all", confidence)
			}

			client := panelapp.NewClientWithBaseURL(viper.GetString("panelapp.base_url"))

			current, err := client.GetPanel(cmd.Context(), panelID)
			if err != nil {
				return err
			}

			old, err := panelAtVersion(cmd, client, current, versions[0])
			if err != nil {
				return err
			}
			new, err := panelAtVersion(cmd, client, current, versions[1])
			if err != nil {
				return err
			}

			diff := panelapp.DiffGeneLists(old, new, conf)

			fmt.Printf("Panel %s: v%s -> v%s (%s genes)\n", panelID, versions[0], versions[1], confidence)
			if len(diff.Added) == 0 && len(diff.Removed) == 0 {
				fmt.Println("No gene changes.")
				return nil
			}
			for _, g := range diff.Added {
				fmt.Printf("+ %s\n", g)
			}
			for _, g := range diff.Removed {
				fmt.Printf("- %s\n", g)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&panelID, "panel", "", "Panel identifier, e.g. R207 (required)")
	cmd.Flags().StringSliceVar(&versions, "versions", nil, "Two panel versions to compare (required)")
	cmd.Flags().StringVar(&confidence, "confidence", "green", "Gene confidence threshold")
	cmd.MarkFlagRequired("panel")
	cmd.MarkFlagRequired("versions")

	return cmd
}

func panelAtVersion(cmd *cobra.Command, client *panelapp.Client, current *panelapp.Panel, version string) (*panelapp.Panel, error) {
	if version == current.Version {
		return current, nil
	}
	return client.GetPanelVersion(cmd.Context(), current.PrimaryKey, version)
}

func newCompareBedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare-bed <a.bed> <b.bed>",
		Short: "Show intervals unique to each of two BED files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, err := bed.Compare(args[0], args[1])
			if err != nil {
				return err
			}

			if len(diff.OnlyInA) == 0 && len(diff.OnlyInB) == 0 {
				fmt.Println("Files cover identical intervals.")
				return nil
			}
			for _, iv := range diff.OnlyInA {
				fmt.Printf("< %s\t%d\t%d\n", iv.Chrom, iv.Start, iv.End)
			}
			for _, iv := range diff.OnlyInB {
				fmt.Printf("> %s\t%d\t%d\n", iv.Chrom, iv.Start, iv.End)
			}
			return nil
		},
	}
}
