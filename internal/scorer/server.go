package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/rnwolfe/triage/internal/task"
)

// analyzeRequest is the accepted body of POST /analyze/.
type analyzeRequest struct {
	Description   string    `json:"description" validate:"required,max=2000"`
	Deadline      task.Date `json:"deadline" validate:"required"`
	Difficulty    int       `json:"difficulty" validate:"min=1,max=3"`
	Importance    int       `json:"importance" validate:"min=1,max=3"`
	EstimatedTime float64   `json:"estimated_time" validate:"gte=0"`
}

func (a analyzeRequest) toTask() task.Request {
	return task.Request{
		Description:   a.Description,
		Deadline:      a.Deadline,
		Difficulty:    a.Difficulty,
		Importance:    a.Importance,
		EstimatedTime: a.EstimatedTime,
	}
}

type analyzeResponse struct {
	Task          task.Request `json:"task"`
	PriorityScore float64      `json:"priority_score"`
}

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Server serves the scoring API.
type Server struct {
	repo   *Repo
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now when computing deadline closeness.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server backed by repo.
func NewServer(repo *Repo, opts ...Option) *Server {
	s := &Server{repo: repo, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "scorer")
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/analyze/", s.handleAnalyze)
		r.Get("/suggest/", s.handleSuggest)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("scoring service listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down scoring service")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := task.Validator().Struct(req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, validationResponse(err))
		return
	}

	t := req.toTask()
	scored := task.Scored{Request: t, PriorityScore: Score(t, s.now())}
	if _, err := s.repo.Insert(r.Context(), scored, r.UserAgent()); err != nil {
		s.logger.Error("storing task", "error", err, "request_id", middleware.GetReqID(r.Context()))
		s.respondError(w, r, http.StatusInternalServerError, ErrorResponse{Error: "failed to store task"})
		return
	}

	s.respondJSON(w, http.StatusOK, analyzeResponse{Task: t, PriorityScore: scored.PriorityScore})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	top, err := s.repo.Top(r.Context(), SuggestLimit)
	if err != nil {
		s.logger.Error("loading suggestions", "error", err, "request_id", middleware.GetReqID(r.Context()))
		s.respondError(w, r, http.StatusInternalServerError, ErrorResponse{Error: "failed to load suggestions"})
		return
	}
	s.respondJSON(w, http.StatusOK, top)
}

func validationResponse(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrorResponse{Error: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, f := range verrs {
		if f.Param() != "" {
			fields[f.Field()] = fmt.Sprintf("failed %s=%s", f.Tag(), f.Param())
		} else {
			fields[f.Field()] = "failed " + f.Tag()
		}
	}
	return ErrorResponse{Error: "invalid task", Fields: fields}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	s.logger.Debug("sending error response",
		"status_code", status,
		"message", body.Error,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()))
	s.respondJSON(w, status, body)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
