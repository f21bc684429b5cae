package cmd

import (
	"fmt"
	"os"

	"github.com/dt-pm-tools/issue-probe/internal/config"
	"github.com/dt-pm-tools/issue-probe/internal/log"
	"github.com/dt-pm-tools/issue-probe/internal/probe"
	"github.com/dt-pm-tools/issue-probe/internal/render"
	"github.com/dt-pm-tools/issue-probe/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	runOverrides config.Config
	runCleanup   bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the create/list/filter/update/re-list sequence",
	Long: `Sends, in order:

  POST /api/issues/{project}             create a test issue
  GET  /api/issues/{project}             list all issues
  GET  /api/issues/{project}?open=false  list closed issues
  PUT  /api/issues/{project}             rename and close the new issue (skipped without an _id)
  GET  /api/issues/{project}             list all issues again

Each status code and body is printed to stdout. The first transport or
decoding error stops the run. Use --cleanup to delete the test issue at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(runOverrides); err != nil {
			return err
		}

		logger := log.New(os.Stderr, runVerbose)

		out := cmd.OutOrStdout()
		renderer, err := render.New(appConfig.Output, render.IsTerminal(out))
		if err != nil {
			return err
		}

		client := tracker.NewClient(appConfig.URL, logger)
		p := probe.New(client, appConfig.Project, out, renderer, logger, probe.Options{Cleanup: runCleanup})

		report, err := p.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("probing %s: %w", appConfig.URL, err)
		}

		logger.WithField("requests", len(report.Steps)).Info("probe finished")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOverrides.URL, "url", "", "tracker base URL (overrides config)")
	runCmd.Flags().StringVarP(&runOverrides.Project, "project", "p", "", "project name (overrides config)")
	runCmd.Flags().StringVarP(&runOverrides.Output, "output", "o", "", "body format: json or yaml (overrides config)")
	runCmd.Flags().BoolVar(&runCleanup, "cleanup", false, "delete the created issue after the run")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log each request")
	rootCmd.AddCommand(runCmd)
}
