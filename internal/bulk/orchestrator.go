// Package bulk submits many task requests to the scoring service at once
// and folds the outcomes into the working set, tolerating individual
// failures.
package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/workset"
)

// ErrNothingAnalyzed is returned when every request in a validated batch
// failed. It is not a validation error: requests were issued.
var ErrNothingAnalyzed = errors.New("no valid tasks were analyzed")

// Analyzer submits one encoded request. *scoring.Client implements it.
type Analyzer interface {
	AnalyzeRaw(ctx context.Context, payload json.RawMessage) (task.Scored, error)
}

// Result summarises a bulk run. Accepted is in completion order.
type Result struct {
	Accepted    []task.Scored
	FailedCount int
}

// Orchestrator fans bulk submissions out to an Analyzer.
type Orchestrator struct {
	analyzer Analyzer
	store    *workset.Store
	logger   *slog.Logger
}

// New creates an Orchestrator that appends accepted tasks to store.
func New(analyzer Analyzer, store *workset.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		analyzer: analyzer,
		store:    store,
		logger:   logger.With("component", "bulk_orchestrator"),
	}
}

// Analyze parses raw user input and runs the batch.
func (o *Orchestrator) Analyze(ctx context.Context, raw []byte) (Result, error) {
	items, err := Parse(raw)
	if err != nil {
		return Result{}, err
	}
	return o.run(ctx, items)
}

// AnalyzeRequests runs a batch of typed requests.
func (o *Orchestrator) AnalyzeRequests(ctx context.Context, reqs []task.Request) (Result, error) {
	if err := checkCount(len(reqs)); err != nil {
		return Result{}, err
	}
	items := make([]json.RawMessage, len(reqs))
	for i, r := range reqs {
		b, err := json.Marshal(r)
		if err != nil {
			return Result{}, fmt.Errorf("encoding task %d: %w", i, err)
		}
		items[i] = b
	}
	return o.run(ctx, items)
}

type outcome struct {
	index int
	task  task.Scored
	err   error
}

// run issues every request before waiting on any, then waits for all of
// them. Outcomes are consumed one at a time on this goroutine, so appends
// happen in completion order.
func (o *Orchestrator) run(ctx context.Context, items []json.RawMessage) (Result, error) {
	start := time.Now()
	outcomes := make(chan outcome, len(items))

	for i, payload := range items {
		go func(i int, payload json.RawMessage) {
			t, err := o.analyzer.AnalyzeRaw(ctx, payload)
			outcomes <- outcome{index: i, task: t, err: err}
		}(i, payload)
	}

	var res Result
	for range items {
		out := <-outcomes
		if out.err != nil {
			res.FailedCount++
			o.logger.Debug("bulk item failed", "index", out.index, "error", out.err)
			continue
		}
		res.Accepted = append(res.Accepted, out.task)
		if o.store != nil {
			o.store.Append(out.task)
		}
	}

	o.logger.Info("bulk analysis finished",
		"submitted", len(items),
		"accepted", len(res.Accepted),
		"failed", res.FailedCount,
		"duration", time.Since(start))

	if len(res.Accepted) == 0 {
		return res, ErrNothingAnalyzed
	}
	return res, nil
}
