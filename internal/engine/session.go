// Package engine wires the scoring client, bulk orchestrator, working set
// and view builder into a single session. Every mutation goes through the
// working set; every read re-derives the view.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rnwolfe/triage/internal/bulk"
	"github.com/rnwolfe/triage/internal/rank"
	"github.com/rnwolfe/triage/internal/scoring"
	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/view"
	"github.com/rnwolfe/triage/internal/workset"
)

// Session holds one user's working set and strategy choice.
type Session struct {
	client *scoring.Client
	bulk   *bulk.Orchestrator
	store  *workset.Store
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	strategy rank.Strategy
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, for deterministic rendering in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithStrategy sets the initial strategy.
func WithStrategy(st rank.Strategy) Option {
	return func(s *Session) { s.strategy = st }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New starts an empty session against client.
func New(client *scoring.Client, opts ...Option) *Session {
	s := &Session{
		client: client,
		store:  workset.New(),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session")
	s.bulk = bulk.New(client, s.store, s.logger)
	return s
}

// Submit scores one request and appends it. Errors leave the working set
// untouched.
func (s *Session) Submit(ctx context.Context, req task.Request) (task.Scored, error) {
	scored, err := s.client.Analyze(ctx, req)
	if err != nil {
		s.logger.Debug("submit failed", "description", req.Description, "error", err)
		return task.Scored{}, err
	}
	s.store.Append(scored)
	s.logger.Debug("task analyzed", "description", scored.Description, "score", scored.PriorityScore)
	return scored, nil
}

// SubmitBulk validates raw JSON input and scores every element concurrently.
func (s *Session) SubmitBulk(ctx context.Context, raw []byte) (bulk.Result, error) {
	return s.bulk.Analyze(ctx, raw)
}

// SubmitRequests scores a batch of typed requests concurrently.
func (s *Session) SubmitRequests(ctx context.Context, reqs []task.Request) (bulk.Result, error) {
	return s.bulk.AnalyzeRequests(ctx, reqs)
}

// Suggestions asks the service for suggested tasks. They are not added to
// the working set.
func (s *Session) Suggestions(ctx context.Context) ([]task.Scored, error) {
	return s.client.Suggest(ctx)
}

// Strategy returns the current strategy.
func (s *Session) Strategy() rank.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// SetStrategy changes the ordering. The working set is not touched.
func (s *Session) SetStrategy(st rank.Strategy) {
	s.mu.Lock()
	s.strategy = st
	s.mu.Unlock()
}

// Tasks returns a snapshot of the working set.
func (s *Session) Tasks() []task.Scored {
	return s.store.Tasks()
}

// Len reports the size of the working set.
func (s *Session) Len() int {
	return s.store.Len()
}

// View renders the working set under the current strategy as of now.
func (s *Session) View() view.View {
	return view.Build(s.store.Tasks(), s.Strategy(), s.now())
}
