package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rnwolfe/triage/internal/task"
)

func sampleRequest() task.Request {
	return task.Request{
		Description:   "fix login bug",
		Deadline:      task.MustDate("2026-03-01"),
		Difficulty:    3,
		Importance:    3,
		EstimatedTime: 2,
	}
}

// echoScorer answers /analyze/ by echoing the submitted task with a fixed score.
func echoScorer(t *testing.T, score float64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"task":           body,
			"priority_score": score,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnalyze_Success(t *testing.T) {
	var gotPath, gotMethod, gotContentType, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, `{"task":{"description":"fix login bug","deadline":"2026-03-01","difficulty":3,"importance":3,"estimated_time":2},"priority_score":2.7}`) //nolint:errcheck
	}))
	defer server.Close()

	c := New(server.URL+"/api/tasks", WithUserAgent("triage-test"))
	got, err := c.Analyze(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/tasks/analyze/" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotUA != "triage-test" {
		t.Errorf("user agent = %q", gotUA)
	}
	if got.PriorityScore != 2.7 {
		t.Errorf("score = %v, want 2.7", got.PriorityScore)
	}
	if got.Description != "fix login bug" || got.Deadline.String() != "2026-03-01" || got.EstimatedTime != 2 {
		t.Errorf("unexpected task: %+v", got)
	}
}

func TestAnalyze_ValidationFailsBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	req := sampleRequest()
	req.Deadline = task.Date{}

	_, err := New(server.URL).Analyze(context.Background(), req)
	if !errors.Is(err, task.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("no request should be sent for an invalid task")
	}
}

func TestAnalyze_BackendErrorKeepsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"deadline":["This field is required."]}`) //nolint:errcheck
	}))
	defer server.Close()

	_, err := New(server.URL).Analyze(context.Background(), sampleRequest())
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %T: %v", err, err)
	}
	if be.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", be.StatusCode)
	}
	if string(be.Payload) != `{"deadline":["This field is required."]}` {
		t.Errorf("payload = %s", be.Payload)
	}
}

func TestAnalyze_BackendErrorWithPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Analyze(context.Background(), sampleRequest())
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BackendError, got %v", err)
	}
	if !json.Valid(be.Payload) {
		t.Fatalf("payload should always be valid JSON, got %s", be.Payload)
	}
	if !strings.Contains(be.Error(), "upstream down") {
		t.Errorf("error should mention body: %v", be)
	}
}

func TestAnalyze_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url).Analyze(context.Background(), sampleRequest())
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
	if ne.Op != http.MethodPost {
		t.Errorf("op = %q", ne.Op)
	}
}

func TestAnalyze_MalformedResponses(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>ok</html>`,
		"missing score":   `{"task":{"description":"x","deadline":"2026-03-01"}}`,
		"missing task":    `{"priority_score":2.1}`,
		"task without id": `{"task":{"deadline":"2026-03-01"},"priority_score":2.1}`,
		"bad deadline":    `{"task":{"description":"x","deadline":"soon"},"priority_score":2.1}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, body) //nolint:errcheck
			}))
			defer server.Close()

			_, err := New(server.URL).Analyze(context.Background(), sampleRequest())
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestAnalyzeRaw_PassesPayloadThrough(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received = string(b)
		io.WriteString(w, `{"task":{"description":"x","deadline":"2026-03-01","difficulty":"3"},"priority_score":1}`) //nolint:errcheck
	}))
	defer server.Close()

	payload := json.RawMessage(`{"description":"x","deadline":"2026-03-01","difficulty":"3"}`)
	_, err := New(server.URL).AnalyzeRaw(context.Background(), payload)
	if received != string(payload) {
		t.Errorf("payload changed in transit: %s", received)
	}
	// "3" does not decode into an int; the service accepted it but the
	// response no longer matches the scored-task schema.
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestAnalyze_EchoRoundTrip(t *testing.T) {
	server := echoScorer(t, 1.9)
	got, err := New(server.URL).Analyze(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Request != sampleRequest() {
		t.Errorf("task changed: %+v", got.Request)
	}
}

func TestSuggest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/suggest/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[{"description":"a","deadline":"2026-03-01","difficulty":1,"importance":3,"estimated_time":1,"priority_score":2.2},{"description":"b","deadline":"2026-03-04","difficulty":2,"importance":2,"estimated_time":3,"priority_score":1.6}]`) //nolint:errcheck
	}))
	defer server.Close()

	got, err := New(server.URL).Suggest(context.Background())
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Description != "a" || got[0].PriorityScore != 2.2 || got[1].Importance != 2 {
		t.Errorf("unexpected suggestions: %+v", got)
	}
}

func TestSuggest_EmptyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`) //nolint:errcheck
	}))
	defer server.Close()

	got, err := New(server.URL).Suggest(context.Background())
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestSuggest_ItemWithoutScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"description":"a","deadline":"2026-03-01"}]`) //nolint:errcheck
	}))
	defer server.Close()

	_, err := New(server.URL).Suggest(context.Background())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("base URL = %q", c.BaseURL())
	}
	if New("http://host/api/").BaseURL() != "http://host/api" {
		t.Error("trailing slash should be trimmed")
	}
}
