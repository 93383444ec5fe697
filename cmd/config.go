package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/config"
	"github.com/rnwolfe/triage/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintln(ui.Stdout, config.GetPaths().ConfigFile)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Run `triage config list` for the known keys.",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Reset a configuration value to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(config.ValidKeyNames(), ", "))
}

func runConfigGet(_ *cobra.Command, args []string) error {
	entry, ok := config.LookupKey(args[0])
	if !ok {
		return unknownKey(args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fmt.Fprintln(ui.Stdout, entry.Get(cfg))
	return nil
}

// runConfigSet edits the file only, so env overrides never get persisted.
func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	entry, ok := config.LookupKey(key)
	if !ok {
		return unknownKey(key)
	}

	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := entry.Set(cfg, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, entry.Get(cfg)))
	return nil
}

func runConfigUnset(_ *cobra.Command, args []string) error {
	key := args[0]

	entry, ok := config.LookupKey(key)
	if !ok {
		return unknownKey(key)
	}

	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	entry.Unset(cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s reset to %q", key, entry.Get(cfg)))
	return nil
}

func runConfigList(_ *cobra.Command, _ []string) error {
	for _, name := range config.ValidKeyNames() {
		entry, _ := config.LookupKey(name)
		desc := entry.Desc
		if len(entry.Choices) > 0 {
			desc += " (" + strings.Join(entry.Choices, ", ") + ")"
		}
		ui.Kv(name, desc)
	}
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ui.Header("Configuration")
	for _, name := range config.ValidKeyNames() {
		entry, _ := config.LookupKey(name)
		ui.Kv(name, entry.Get(cfg))
	}
	fmt.Fprintln(ui.Stdout)
	ui.Kv("file", config.GetPaths().ConfigFile)
	return nil
}
