package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PatrickWeller/panelpal/internal/store"
)

func newPatientCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Manage the patient analysis database",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "Patient database path")

	cmd.AddCommand(newPatientAddCmd(&dbPath))
	cmd.AddCommand(newPatientListCmd(&dbPath))
	cmd.AddCommand(newPatientBedFilesCmd(&dbPath))

	return cmd
}

func newPatientAddCmd(dbPath *string) *cobra.Command {
	var (
		name string
		dob  string
	)

	cmd := &cobra.Command{
		Use:   "add <nhs-number>",
		Short: "Add a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedDOB, err := time.Parse("2006-01-02", dob)
			if err != nil {
				return fmt.Errorf("bad date of birth %q: use YYYY-MM-DD", dob)
			}

			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.AddPatient(store.Patient{
				NHSNumber: args[0],
				Name:      name,
				DOB:       parsedDOB,
			}); err != nil {
				return err
			}

			fmt.Printf("Added patient %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Patient name (required)")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("dob")

	return cmd
}

func newPatientListCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			patients, err := s.ListPatients()
			if err != nil {
				return err
			}
			if len(patients) == 0 {
				fmt.Println("No patients recorded.")
				return nil
			}
			for _, p := range patients {
				fmt.Printf("%s\t%s\t%s\n", p.NHSNumber, p.Name, p.DOB.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newPatientBedFilesCmd(dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bed-files <nhs-number>",
		Short: "List BED files generated for a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(*dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.PatientBedFiles(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Printf("No BED files recorded for %s.\n", args[0])
				return nil
			}
			for _, r := range records {
				fmt.Printf("%s\t%s v%s\t%s\t%s\n",
					r.AnalysisDate.Format("2006-01-02"), r.PanelID, r.PanelVersion, r.GenomeBuild, r.BedPath)
			}
			return nil
		},
	}
}
