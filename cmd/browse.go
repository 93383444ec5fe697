package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/tui"
	"github.com/rnwolfe/triage/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [file|-]",
	Short: "Browse ranked tasks interactively",
	Long: `Opens the interactive browser. With a file (or "-" for stdin) the tasks
in it are bulk-analyzed first. Keys: tab or 1-4 switch strategy, j/k move,
s toggles suggestions, / filters, q quits.

When stdout is not a terminal the ranked list is printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	var preload []byte
	if len(args) == 1 {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}
		preload = raw
	}

	sess := newSession()
	ctx := commandContext(cmd)

	if !ui.IsStdoutTTY() || !ui.IsStdinTTY() {
		if preload != nil {
			if _, err := sess.SubmitBulk(ctx, preload); err != nil {
				return describe(err)
			}
		}
		return printView(ui.Stdout, sess)
	}

	return tui.RunBrowse(ctx, sess, preload)
}
