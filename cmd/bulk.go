package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/bulk"
	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/ui"
)

var bulkFormat string

var bulkCmd = &cobra.Command{
	Use:   "bulk [file|-]",
	Short: "Score up to 20 tasks at once",
	Long: `Reads a JSON array of task objects from a file, or from stdin when the
argument is "-" or omitted. Files ending in .toml (or --format toml) hold
[[task]] tables instead. Every task is scored concurrently; tasks the
service rejects are counted and skipped.`,
	Example: `  triage bulk tasks.json
  cat tasks.json | triage bulk
  triage bulk week.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().BoolVar(&flagJSON, "json", false, "print the ranked view as JSON")
	bulkCmd.Flags().StringVar(&bulkFormat, "format", "", "input format: json or toml (default: from file extension)")
}

// taskFile is the TOML layout for bulk input.
type taskFile struct {
	Tasks []task.Request `toml:"task"`
}

func runBulk(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	raw, err := readInput(path)
	if err != nil {
		return err
	}

	format, err := inputFormat(path, bulkFormat)
	if err != nil {
		return err
	}

	sess := newSession()
	ctx := commandContext(cmd)
	var res bulk.Result
	if format == "toml" {
		var reqs []task.Request
		reqs, err = decodeTOMLTasks(raw)
		if err == nil {
			res, err = sess.SubmitRequests(ctx, reqs)
		}
	} else {
		res, err = sess.SubmitBulk(ctx, raw)
	}
	if err != nil {
		return describe(err)
	}

	fmt.Fprintln(ui.Stderr, ui.Muted.Render(summary(res)))
	return printView(ui.Stdout, sess)
}

func inputFormat(path, flag string) (string, error) {
	switch f := strings.ToLower(flag); f {
	case "json", "toml":
		return f, nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			return "toml", nil
		}
		return "json", nil
	default:
		return "", fmt.Errorf("unknown format %q: want json or toml", flag)
	}
}

// decodeTOMLTasks reads [[task]] tables. Unknown keys are ignored; the
// scoring service decides what a valid task is.
func decodeTOMLTasks(raw []byte) ([]task.Request, error) {
	var tf taskFile
	md, err := toml.Decode(string(raw), &tf)
	if err != nil {
		return nil, &task.ValidationError{Kind: task.MalformedInput, Detail: fmt.Sprintf("invalid TOML: %v", err)}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		app.logger.Debug("ignoring unknown task keys", "keys", fmt.Sprint(undecoded))
	}
	return tf.Tasks, nil
}

func summary(res bulk.Result) string {
	return fmt.Sprintf("%d analyzed, %d failed", len(res.Accepted), res.FailedCount)
}

// readInput reads a file, or stdin for "-". Reading from an interactive
// terminal is refused since nothing would ever arrive.
func readInput(path string) ([]byte, error) {
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}
	if ui.IsStdinTTY() {
		return nil, errors.New("no input: pass a file or pipe JSON on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}
