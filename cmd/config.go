package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dt-pm-tools/issue-probe/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the tracker URL, project and output format",
	Long:  `Interactively set the tracker base URL, the project name and the body output format. Settings are saved to ~/.issue-probe.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		url := prompt(reader, out, "Tracker URL (e.g., https://abcd.ngrok.app)", existing.URL, config.DefaultURL)
		project := prompt(reader, out, "Project", existing.Project, "")
		output := prompt(reader, out, "Output format (json|yaml)", existing.Output, "")

		cfg := config.Config{
			URL:     url,
			Project: project,
			Output:  output,
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Fprintf(out, "Configuration saved to %s\n", path)
		return nil
	},
}

// prompt asks for a value, falling back to current when the answer is empty.
// placeholder is a current value that should not be offered as a default.
func prompt(reader *bufio.Reader, out io.Writer, label, current, placeholder string) string {
	if current != "" && current != placeholder {
		fmt.Fprintf(out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	return answer
}

func init() {
	rootCmd.AddCommand(configCmd)
}
