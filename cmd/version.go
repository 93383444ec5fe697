package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/ui"
	"github.com/rnwolfe/triage/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print triage version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	versionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print version, commit and date as JSON")
}

func runVersion(_ *cobra.Command, _ []string) error {
	switch {
	case flagJSON:
		return json.NewEncoder(ui.Stdout).Encode(version.Get())
	case versionShort:
		fmt.Fprintln(ui.Stdout, version.Short())
	default:
		fmt.Fprintf(ui.Stdout, "triage %s\n", version.Full())
	}
	return nil
}
