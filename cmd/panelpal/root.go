package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/PatrickWeller/panelpal/internal/panelapp"
	"github.com/PatrickWeller/panelpal/internal/transcript"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "panelpal",
		Short: "Generate BED files from PanelApp gene panels",
		Long: `panelpal fetches gene panels from PanelApp, resolves each gene to its
MANE Select transcript exons via VariantValidator, and writes BED interval
files for downstream bioinformatics pipelines.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newGenerateBedCmd(&logLevel))
	cmd.AddCommand(newPanelInfoCmd())
	cmd.AddCommand(newComparePanelVersionsCmd())
	cmd.AddCommand(newCompareBedCmd())
	cmd.AddCommand(newPatientCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("panelpal version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.panelpal.yaml if present and binds environment
// variables with the PANELPAL_ prefix.
func initConfig() error {
	viper.SetDefault("panelapp.base_url", panelapp.DefaultBaseURL)
	viper.SetDefault("transcript.base_url", transcript.DefaultBaseURL)

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".panelpal")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("panelpal")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger builds a console zap logger at the requested level.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

// defaultDBPath is where the patient database lives unless overridden.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "panelpal.db"
	}
	return filepath.Join(home, ".panelpal", "panelpal.db")
}
