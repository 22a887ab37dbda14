package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/distcheck/internal/errors"
)

// Format specifies the output format for validation reports.
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
		return "", errors.Newf("unknown report format %q (valid: text, json)", s)
	}
}

// Status is the overall outcome for one file.
type Status string

const (
	// StatusOK marks a file that decoded and passed validation.
	StatusOK Status = "OK"
	// StatusFailed marks a file with violations or a structural failure.
	StatusFailed Status = "FAILED"
)

// summaryWidth is the column the status of each summary line starts at.
const summaryWidth = 40

// maxValueRunes bounds how much of an offending value a detail line shows.
const maxValueRunes = 50

// rule separates a file header from its details.
var rule = strings.Repeat("=", 50)

// Entry is the outcome of checking one file. Err is set when the file could
// not be read or decoded; otherwise Result holds the validation issues.
type Entry struct {
	Path   string
	Result *Result
	Err    error
}

// Status reports whether the entry passed.
func (e Entry) Status() Status {
	if e.Err != nil || e.Result.HasErrors() {
		return StatusFailed
	}
	return StatusOK
}

// FileReport is the serialized form of an Entry.
type FileReport struct {
	Path   string  `json:"path" yaml:"path"`
	Status Status  `json:"status" yaml:"status"`
	Error  string  `json:"error,omitempty" yaml:"error,omitempty"`
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Report is the serialized form of a whole batch.
type Report struct {
	Valid bool         `json:"valid" yaml:"valid"`
	Files []FileReport `json:"files" yaml:"files"`
}

// BuildReport converts entries into their serializable form.
func BuildReport(entries []Entry) Report {
	rep := Report{Valid: true, Files: make([]FileReport, 0, len(entries))}
	for _, e := range entries {
		fr := FileReport{Path: e.Path, Status: e.Status()}
		if e.Err != nil {
			fr.Error = e.Err.Error()
		} else if e.Result != nil {
			fr.Issues = e.Result.Issues
		}
		if fr.Status != StatusOK {
			rep.Valid = false
		}
		rep.Files = append(rep.Files, fr)
	}
	return rep
}

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the details of every failed entry followed by the summary.
func (r *Reporter) Report(entries []Entry) error {
	for _, e := range entries {
		if err := r.Detail(e); err != nil {
			return err
		}
	}
	return r.Summary(entries)
}

// Detail writes the failure detail for a single entry as soon as it is
// known. Passing entries and JSON output produce nothing.
func (r *Reporter) Detail(e Entry) error {
	if r.format == FormatJSON || e.Status() == StatusOK {
		return nil
	}

	fmt.Fprintln(r.out, e.Path)
	fmt.Fprintln(r.out, rule)
	if e.Err != nil {
		fmt.Fprintln(r.out, e.Err.Error())
	} else {
		for _, issue := range e.Result.Errors() {
			r.printIssue(issue, color.FgRed)
		}
	}
	fmt.Fprintln(r.out)
	return nil
}

// Summary writes one status line per entry, in order.
func (r *Reporter) Summary(entries []Entry) error {
	if r.format == FormatJSON {
		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(BuildReport(entries)), "encoding JSON report")
	}

	for _, e := range entries {
		status := e.Status()
		label := color.GreenString(string(status))
		if status != StatusOK {
			label = color.RedString(string(status))
		}
		fmt.Fprintf(r.out, "%-*s[%s]\n", summaryWidth, e.Path, label)
	}
	return nil
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	// Format:  • field: message (context) [value]

	var sb strings.Builder
	sb.WriteString("  • ")

	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}

	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		var ctxParts []string
		for k, v := range i.Context {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%s", k, v))
		}
		// Sort for deterministic output
		sort.Strings(ctxParts)

		sb.WriteString(" ")
		sb.WriteString(color.New(color.FgHiBlack).Sprintf("(%s)", strings.Join(ctxParts, ", ")))
	}

	if i.Value != nil {
		valStr := fmt.Sprintf("%v", i.Value)
		// Truncate long values on rune boundaries
		if runes := []rune(valStr); len(runes) > maxValueRunes {
			valStr = string(runes[:maxValueRunes-3]) + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}
