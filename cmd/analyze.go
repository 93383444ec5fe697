package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/engine"
	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/tips"
	"github.com/rnwolfe/triage/internal/ui"
)

var (
	analyzeDeadline   string
	analyzeDifficulty int
	analyzeImportance int
	analyzeHours      float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Score a single task and show it ranked",
	Example: `  triage analyze "Fix login bug" --deadline 2026-03-01 --importance 3 --difficulty 2 --hours 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeDeadline, "deadline", "d", "", "due date (YYYY-MM-DD)")
	f.IntVar(&analyzeDifficulty, "difficulty", 2, "difficulty, 1 (low) to 3 (high)")
	f.IntVar(&analyzeImportance, "importance", 2, "importance, 1 (low) to 3 (high)")
	f.Float64Var(&analyzeHours, "hours", 1, "estimated effort in hours")
	f.BoolVar(&flagJSON, "json", false, "print the ranked view as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req := task.Request{
		Description:   strings.Join(args, " "),
		Difficulty:    analyzeDifficulty,
		Importance:    analyzeImportance,
		EstimatedTime: analyzeHours,
	}
	if analyzeDeadline != "" {
		d, err := task.ParseDate(analyzeDeadline)
		if err != nil {
			return fmt.Errorf("--deadline: %w", err)
		}
		req.Deadline = d
	}

	sess := newSession()
	if _, err := sess.Submit(commandContext(cmd), req); err != nil {
		return describe(err)
	}
	return printView(ui.Stdout, sess)
}

// printView renders the session either as text or, with --json, as the
// raw view.
func printView(w io.Writer, sess *engine.Session) error {
	v := sess.View()
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	ui.RenderView(w, v, ui.Width())
	if v.Empty {
		ui.Tip(tips.Daily(time.Now()))
	}
	return nil
}
