package task

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationKind classifies a local pre-flight rejection.
type ValidationKind int

const (
	MissingField ValidationKind = iota + 1
	MalformedInput
	TooManyTasks
	EmptyInput
)

func (k ValidationKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case MalformedInput:
		return "malformed input"
	case TooManyTasks:
		return "too many tasks"
	case EmptyInput:
		return "empty input"
	default:
		return "invalid"
	}
}

// ValidationError is returned before any network call is made.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	default:
		return e.Kind.String()
	}
}

// Is matches any ValidationError of the same kind, so callers can write
// errors.Is(err, task.ErrTooManyTasks).
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrMissingField   = &ValidationError{Kind: MissingField}
	ErrMalformedInput = &ValidationError{Kind: MalformedInput}
	ErrTooManyTasks   = &ValidationError{Kind: TooManyTasks}
	ErrEmptyInput     = &ValidationError{Kind: EmptyInput}
)

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return &ValidationError{
			Kind:   MissingField,
			Field:  f.Field(),
			Detail: fmt.Sprintf("%s is required", f.Field()),
		}
	}
	return &ValidationError{Kind: MissingField, Detail: err.Error()}
}
