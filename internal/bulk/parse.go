package bulk

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rnwolfe/triage/internal/task"
)

// MaxTasks caps a single bulk submission.
const MaxTasks = 20

// Parse checks that raw is a JSON array of at most MaxTasks objects and
// returns the elements untouched. No request is issued here; every failure
// is a *task.ValidationError.
func Parse(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &task.ValidationError{Kind: task.EmptyInput, Detail: "please paste a JSON array of tasks"}
	}

	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return nil, &task.ValidationError{Kind: task.MalformedInput, Detail: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if trimmed[0] != '[' {
		return nil, &task.ValidationError{Kind: task.MalformedInput, Detail: "JSON must be an array of task objects"}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &task.ValidationError{Kind: task.MalformedInput, Detail: fmt.Sprintf("invalid JSON: %v", err)}
	}
	for i, it := range items {
		if b := bytes.TrimSpace(it); len(b) == 0 || b[0] != '{' {
			return nil, &task.ValidationError{
				Kind:   task.MalformedInput,
				Detail: fmt.Sprintf("element %d is not a task object", i),
			}
		}
	}

	if err := checkCount(len(items)); err != nil {
		return nil, err
	}
	return items, nil
}

func checkCount(n int) error {
	switch {
	case n > MaxTasks:
		return &task.ValidationError{
			Kind:   task.TooManyTasks,
			Detail: fmt.Sprintf("please limit bulk analysis to %d tasks (got %d)", MaxTasks, n),
		}
	case n == 0:
		return &task.ValidationError{Kind: task.EmptyInput, Detail: "no tasks to analyze"}
	}
	return nil
}
