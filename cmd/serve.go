package cmd

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/triage/internal/scorer"
	"github.com/rnwolfe/triage/internal/store"
	"github.com/rnwolfe/triage/internal/ui"
)

var (
	serveAddr string
	serveDB   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local scoring service",
	Long: `Runs a local scoring service on the same API the CLI talks to:
POST /api/tasks/analyze/ and GET /api/tasks/suggest/. Scored tasks are
kept in SQLite so suggestions survive restarts.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8000)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", `SQLite file, or ":memory:" (default in the data dir)`)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = app.cfg.Server.Addr
	}
	dbPath := serveDB
	if dbPath == "" {
		dbPath = app.cfg.DBPath()
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	ctx := commandContext(cmd)
	repo := scorer.NewRepo(db.Conn())
	stored, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting stored tasks: %w", err)
	}
	app.logger.Info("opened scorer database", "path", db.Path(), "tasks", stored)

	srv := scorer.NewServer(repo, scorer.WithLogger(app.logger))
	return srv.ListenAndServe(ctx, addr, func(a net.Addr) {
		ui.Ok(fmt.Sprintf("scoring service on http://%s/api/tasks", a))
		ui.Kv("database", db.Path())
		ui.Kv("stored tasks", strconv.Itoa(stored))
	})
}
