// Package validator provides the issue and result types shared by distcheck
// validators, and a reporter that renders them.
package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name, so saved reports can be read back.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return errors.Newf("unknown severity %q", text)
	}
	return nil
}

// Code classifies why a field failed validation.
type Code string

const (
	// CodeMissingField reports a required field absent from the document.
	CodeMissingField Code = "missing_field"
	// CodeWrongType reports a value of the wrong JSON type or shape.
	CodeWrongType Code = "wrong_type"
	// CodeInvalidValue reports a well-typed value that fails a predicate or parser.
	CodeInvalidValue Code = "invalid_value"
	// CodeUnknownField reports a field the schema does not define.
	CodeUnknownField Code = "unknown_field"
)

// Issue represents a single validation problem.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity `json:"severity" yaml:"severity"`
	// Code classifies the problem (optional).
	Code Code `json:"code,omitempty" yaml:"code,omitempty"`
	// Field identifies the field with the issue (optional).
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	// Message is a human-readable description of the problem.
	Message string `json:"message" yaml:"message"`
	// Value is the actual value that failed validation (optional).
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Context carries the location inside the field, e.g. a list index or map key.
	Context map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		sb.WriteString("field \"")
		sb.WriteString(i.Field)
		sb.WriteString("\": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates validation issues in the order they were found.
type Result struct {
	Issues []Issue `json:"issues" yaml:"issues"`
}

// Valid reports whether the result carries no errors.
func (r *Result) Valid() bool {
	return !r.HasErrors()
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Add appends an issue to the result.
func (r *Result) Add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

// AddViolation adds an error issue classified by code.
func (r *Result) AddViolation(code Code, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityError,
		Code:     code,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// Errors returns a slice of all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(func(i Issue) bool { return i.Severity == SeverityError })
}

// ForField returns the issues reported against field.
func (r *Result) ForField(field string) []Issue {
	return r.filter(func(i Issue) bool { return i.Field == field })
}

func (r *Result) filter(keep func(Issue) bool) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if keep(i) {
			res = append(res, i)
		}
	}
	return res
}
