package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/ui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the tasks the scoring service suggests next",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&flagJSON, "json", false, "print suggestions as JSON")
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	tasks, err := newSession().Suggestions(commandContext(cmd))
	if err != nil {
		return describe(err)
	}
	if flagJSON {
		enc := json.NewEncoder(ui.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	ui.RenderSuggestions(ui.Stdout, tasks)
	return nil
}
