package version

import (
	"fmt"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// Sentinel errors for version parsing.
var (
	ErrInvalidVersion   = errors.New("invalid version number")
	ErrInvalidPredicate = errors.New("invalid version predicate")
)

// Error describes a string that could not be parsed.
type Error struct {
	// Input is the offending string.
	Input string
	// Reason is an optional detail appended to the message.
	Reason string
	// Err is ErrInvalidVersion or ErrInvalidPredicate.
	Err error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v %q", e.Err, e.Input)
	}
	return fmt.Sprintf("%v %q: %s", e.Err, e.Input, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}
