package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PatrickWeller/panelpal/internal/panelapp"
)

func newPanelInfoCmd() *cobra.Command {
	var panelVersion string

	cmd := &cobra.Command{
		Use:   "panel-info <panel-id>",
		Short: "Show a panel's name, version, and gene tier counts",
		Example: `  panelpal panel-info R207
  panelpal panel-info R207 --panel-version 1.2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := panelapp.NewClientWithBaseURL(viper.GetString("panelapp.base_url"))

			panel, err := client.GetPanel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if panelVersion != "" && panelVersion != panel.Version {
				panel, err = client.GetPanelVersion(cmd.Context(), panel.PrimaryKey, panelVersion)
				if err != nil {
					return err
				}
			}

			counts := panel.TierCounts()
			fmt.Printf("Panel:   %s (%s)\n", panel.Name, args[0])
			fmt.Printf("Version: %s\n", panel.Version)
			fmt.Printf("Genes:   %d green, %d amber, %d red\n", counts[3], counts[2], counts[1])

			return nil
		},
	}

	cmd.Flags().StringVar(&panelVersion, "panel-version", "", "Panel version (default: current)")

	return cmd
}
