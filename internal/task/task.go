// Package task defines the records that flow through the ranking engine:
// requests produced by the input layer and tasks scored by the remote
// prioritization service.
package task

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for deadlines.
const DateLayout = "2006-01-02"

// Date is a calendar deadline. It marshals as YYYY-MM-DD and is interpreted
// as midnight UTC when compared as an instant.
type Date struct {
	time.Time
}

// NewDate returns the date portion of t as a Date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD, falling back to RFC 3339 timestamps. A
// timestamp keeps the calendar day of its own offset; the time of day is
// dropped.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

// MustDate parses s and panics on error. Intended for tests and literals.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalText and UnmarshalText let text-based formats such as TOML carry
// deadlines as strings or native dates.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("deadline must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Request is a task as captured from the user, before scoring.
type Request struct {
	Description   string  `json:"description" toml:"description" validate:"required"`
	Deadline      Date    `json:"deadline" toml:"deadline" validate:"required"`
	Difficulty    int     `json:"difficulty" toml:"difficulty"`
	Importance    int     `json:"importance" toml:"importance"`
	EstimatedTime float64 `json:"estimated_time" toml:"estimated_time"` // hours
}

// Scored is a request enriched with the priority score computed by the
// remote service. Values are never modified after ingestion.
type Scored struct {
	Request
	PriorityScore float64 `json:"priority_score"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Dates validate as their wire string so that "required" rejects the zero date.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})
	return v
}

// Validator returns the shared validator with the task type registrations.
func Validator() *validator.Validate {
	return validate
}

// Validate runs the pre-flight presence check: description and deadline are
// required before a request may be submitted.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return &ValidationError{Kind: MissingField, Field: "description", Detail: "description is required"}
	}
	if err := validate.Struct(r); err != nil {
		return fromValidator(err)
	}
	return nil
}
