package cmd

import (
	"errors"
	"fmt"

	"github.com/rnwolfe/triage/internal/bulk"
	"github.com/rnwolfe/triage/internal/scoring"
	"github.com/rnwolfe/triage/internal/task"
)

// describe turns engine errors into the message shown to the user. The
// original error stays wrapped.
func describe(err error) error {
	var (
		verr *task.ValidationError
		nerr *scoring.NetworkError
		berr *scoring.BackendError
		perr *scoring.ParseError
	)
	switch {
	case errors.As(err, &verr):
		return err
	case errors.Is(err, bulk.ErrNothingAnalyzed):
		return fmt.Errorf("none of the tasks could be analyzed: %w", err)
	case errors.As(err, &nerr):
		return fmt.Errorf("could not reach the scoring service: %w", err)
	case errors.As(err, &berr):
		return fmt.Errorf("scoring service rejected the request: %w", err)
	case errors.As(err, &perr):
		return fmt.Errorf("unexpected response from the scoring service: %w", err)
	default:
		return err
	}
}
