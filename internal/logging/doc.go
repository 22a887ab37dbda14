// Package logging configures log/slog for the distcheck CLI.
//
// Text output goes through [Handler], a compact single-line format that is
// colorized on terminals. JSON output uses the standard slog JSON handler.
// A log file, when configured, always receives JSON via [MultiHandler].
//
//	logger := logging.New(logging.Options{
//		Level:  logging.ResolveLevel(verbosity, quiet, os.Getenv("DISTCHECK_DEBUG")),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Code that receives a context retrieves the logger with [FromContext].
// Tests use [ForTest] so log lines end up in the test output.
package logging
