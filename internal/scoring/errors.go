package scoring

import (
	"encoding/json"
	"fmt"
)

// NetworkError reports that the scoring service could not be reached or the
// exchange broke off mid-way.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError reports a non-success status. Payload is the response body,
// kept verbatim when it is JSON.
type BackendError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *BackendError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, string(e.Payload))
}

// ParseError reports a success response whose body does not describe a
// scored task.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected response from scoring service: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// rawPayload keeps JSON bodies as-is and quotes anything else so the
// payload is always valid JSON.
func rawPayload(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return json.RawMessage(quoted)
}
