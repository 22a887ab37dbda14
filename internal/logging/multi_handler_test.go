package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/distcheck/internal/errors"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var text, jsonOut bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}, false),
		slog.NewJSONHandler(&jsonOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run", 1)

	logger.Debug("decoded document", "path", "pkg.json")
	logger.Warn("document failed", "path", "bad.json")

	assert.NotContains(t, text.String(), "decoded document")
	assert.Contains(t, text.String(), "document failed")

	lines := strings.Split(strings.TrimSpace(jsonOut.String()), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, float64(1), rec["run"])
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, NewMultiHandler().Enabled(t.Context(), slog.LevelError))
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewJSONHandler(&buf, nil))

	slog.New(h).WithGroup("file").Info("checked", "path", "a.json")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	group, ok := rec["file"].(map[string]any)
	require.True(t, ok, "expected group in %s", buf.String())
	assert.Equal(t, "a.json", group["path"])
}

type failingHandler struct {
	slog.Handler
	err error
}

func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }

func TestMultiHandler_JoinsErrors(t *testing.T) {
	errA := errors.New("disk full")
	errB := errors.New("pipe closed")
	var buf bytes.Buffer
	h := NewMultiHandler(
		failingHandler{Handler: slog.NewJSONHandler(&bytes.Buffer{}, nil), err: errA},
		slog.NewJSONHandler(&buf, nil),
		failingHandler{Handler: slog.NewJSONHandler(&bytes.Buffer{}, nil), err: errB},
	)

	err := h.Handle(t.Context(), slog.NewRecord(time.Now(), slog.LevelInfo, "checked", 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, buf.String(), "checked", "healthy handler should still receive the record")
}
