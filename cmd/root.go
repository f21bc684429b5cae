package cmd

import (
	"fmt"
	"os"

	"github.com/dt-pm-tools/issue-probe/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	appConfig config.Config
	version   = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "issue-probe",
	Short:   "Smoke-test an issue tracker API",
	Long:    `A disposable diagnostic tool that creates, lists, filters, updates and re-lists issues against a remote /api/issues/{project} endpoint, printing every status code and body for a human to inspect.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.issue-probe.yaml)")
}

// loadConfig loads configuration, applies overrides and validates the result.
func loadConfig(overrides config.Config) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if overrides.URL != "" {
		cfg.URL = overrides.URL
	}
	if overrides.Project != "" {
		cfg.Project = overrides.Project
	}
	if overrides.Output != "" {
		cfg.Output = overrides.Output
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\nRun 'issue-probe config' or pass --url", err)
	}
	appConfig = cfg
	return nil
}
