package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/config"
	"github.com/rnwolfe/triage/internal/engine"
	"github.com/rnwolfe/triage/internal/logging"
	"github.com/rnwolfe/triage/internal/rank"
	"github.com/rnwolfe/triage/internal/scoring"
	"github.com/rnwolfe/triage/internal/ui"
)

var (
	flagStrategy strategyFlag
	flagAPI      string
	flagVerbose  bool
	flagNoColor  bool
	flagJSON     bool
)

// app is the per-invocation state resolved by setup.
var app struct {
	cfg      *config.Config
	logger   *slog.Logger
	strategy rank.Strategy
}

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Rank tasks by priority, effort, impact or deadline",
	Long: `triage sends tasks to a scoring service and shows them ranked by the
strategy you pick. Run it with no arguments for the interactive browser.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setup,
	RunE:              runBrowse,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Err(err.Error())
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Var(&flagStrategy, "strategy", "sort strategy: balanced, fastest, impact, deadline")
	pf.StringVar(&flagAPI, "api", "", "scoring service base URL (overrides config)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging on stderr")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads config, configures logging and color, and resolves the
// strategy. Flags win over env, env over the config file.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagAPI != "" {
		cfg.Scoring.BaseURL = flagAPI
	}

	app.cfg = cfg
	app.logger = logging.Setup(os.Stderr, logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: flagVerbose,
	})
	ui.SetColor(cfg.Display.ColorEnabled() && !flagNoColor && ui.IsStdoutTTY())

	name := cfg.Display.Strategy
	if flagStrategy.set {
		name = flagStrategy.value
	}
	app.strategy = resolveStrategy(name, app.logger)
	return nil
}

// resolveStrategy falls back to balanced for unknown names.
func resolveStrategy(name string, logger *slog.Logger) rank.Strategy {
	s, ok := rank.LookupStrategy(name)
	if !ok {
		logger.Warn("unknown strategy, using balanced", "strategy", name)
	}
	return s
}

func newClient() *scoring.Client {
	return scoring.New(app.cfg.Scoring.BaseURL,
		scoring.WithLogger(app.logger),
		scoring.WithUserAgent(app.cfg.Scoring.UserAgent),
	)
}

func newSession() *engine.Session {
	return engine.New(newClient(),
		engine.WithStrategy(app.strategy),
		engine.WithLogger(app.logger),
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
