package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// LevelTrace is more verbose than slog.LevelDebug. The check command logs
// each reported issue at this level.
const LevelTrace = slog.Level(-8)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ParseFormat converts s into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.Newf("unknown log format %q (valid: text, json)", s)
	}
}

// Options configures the logger built by New.
type Options struct {
	// Level is the minimum level written to every destination.
	Level slog.Level
	// Format selects the encoding of Output.
	Format Format
	// Output receives log records. Defaults to os.Stderr.
	Output io.Writer
	// Color is a color mode for text output: "always", "never" or "auto".
	Color string
	// File, if set, additionally receives every record as JSON.
	File io.Writer
}

// New builds a logger from opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level, ReplaceAttr: replaceLevel}

	var handler slog.Handler
	if opts.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, ho)
	} else {
		handler = NewHandler(out, ho, UseColor(out, opts.Color))
	}

	if opts.File != nil {
		handler = NewMultiHandler(handler, slog.NewJSONHandler(opts.File, ho))
	}
	return slog.New(handler)
}

// LevelFromVerbosity maps the count of -v flags to a log level:
// 0 warn, 1 info, 2 debug, 3+ trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ResolveLevel combines the -v count, the -q flag and the value of the debug
// environment variable ("1"/"true" for debug, "2" for trace). Flags win over
// the environment.
func ResolveLevel(verbosity int, quiet bool, debugEnv string) slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		switch debugEnv {
		case "1", "true":
			verbosity = 2
		case "2":
			verbosity = 3
		}
	}
	return LevelFromVerbosity(verbosity)
}

// replaceLevel names LevelTrace "TRACE" in JSON output.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(level))
		}
	}
	return a
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testWriter sends each log line to t.Log.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.t.Log(string(p))
	return n, nil
}

// ForTest returns a trace-level logger writing to the test log, so output
// shows up only for failing tests or with -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Options{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
		Color:  "never",
	})
}
