package config

import (
	"fmt"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidFormat indicates an unrecognized report format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidColor indicates an unrecognized color mode.
	ErrInvalidColor = errors.New("invalid color mode")

	// ErrInvalidFileSize indicates a non-positive read limit.
	ErrInvalidFileSize = errors.New("max_file_size must be > 0")
)

// FieldError describes an invalid value of one setting.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or every validation error found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	switch cfg.Format {
	case "text", "json":
	default:
		errs = append(errs, &FieldError{Field: "format", Value: cfg.Format, Err: ErrInvalidFormat})
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, &FieldError{Field: "color", Value: cfg.Color, Err: ErrInvalidColor})
	}

	if cfg.MaxFileSize <= 0 {
		errs = append(errs, &FieldError{
			Field: "max_file_size",
			Value: fmt.Sprint(cfg.MaxFileSize),
			Err:   ErrInvalidFileSize,
		})
	}

	return errs
}
