package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// timeFormat is the clock shown in front of each text record.
const timeFormat = "15:04:05"

// Handler writes one human-readable line per record:
//
//	15:04:05 WARN  document failed path=bad.json issues=2
//
// Group names prefix keys with dots. Values containing spaces or quotes are
// quoted.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	prefix string // pre-rendered WithAttrs output
	groups string // dotted group prefix, with trailing dot
	style  *palette
}

// palette holds the colors of a colorized Handler.
type palette struct {
	time, key          *color.Color
	trace, debug, info *color.Color
	warn, err          *color.Color
}

func newPalette() *palette {
	p := &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	// Colors are decided by UseColor, not by fatih/color's stdout check
	for _, c := range []*color.Color{p.time, p.key, p.trace, p.debug, p.info, p.warn, p.err} {
		c.EnableColor()
	}
	return p
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l > LevelTrace:
		return p.debug
	default:
		return p.trace
	}
}

// NewHandler creates a text handler writing to out. opts.Level defaults to
// info; other options are ignored. colored enables ANSI colors.
func NewHandler(out io.Writer, opts *slog.HandlerOptions, colored bool) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if colored {
		h.style = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r into a single line and writes it with one call.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(timeFormat)))
		buf.WriteByte(' ')
	}

	name := fmt.Sprintf("%-5s", levelName(r.Level))
	if h.style != nil {
		name = h.style.level(r.Level).Sprint(name)
	}
	buf.WriteString(name)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) writeAttr(buf *bytes.Buffer, groups string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.paint(h.keyColor(), groups+a.Key))
	buf.WriteByte('=')
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindTime {
		s = v.Time().Format(time.RFC3339)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (h *Handler) timeColor() *color.Color {
	if h.style == nil {
		return nil
	}
	return h.style.time
}

func (h *Handler) keyColor() *color.Color {
	if h.style == nil {
		return nil
	}
	return h.style.key
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// WithAttrs returns a Handler that appends attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	for _, a := range attrs {
		h.writeAttr(&buf, h.groups, a)
	}
	h2 := *h
	h2.prefix = h.prefix + buf.String()
	return &h2
}

// WithGroup returns a Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = h.groups + name + "."
	return &h2
}
