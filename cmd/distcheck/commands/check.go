package commands

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/logging"
	"github.com/thoreinstein/distcheck/internal/metadata"
	"github.com/thoreinstein/distcheck/internal/validator"
	"github.com/thoreinstein/distcheck/pkg/fileutil"
)

var (
	checkStrict bool
	checkFormat string
	checkReport string
)

func init() {
	addCheckFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}

// addCheckFlags registers the check flags on c. The root command shares
// them so that "distcheck <path>" behaves like "distcheck check <path>".
func addCheckFlags(c *cobra.Command) {
	c.Flags().BoolVar(&checkStrict, "strict", false,
		"report fields that are not part of the schema")
	c.Flags().StringVarP(&checkFormat, "format", "f", "text",
		"output format: text, json")
	c.Flags().StringVar(&checkReport, "report", "",
		"also write a report to this file (YAML for .yaml/.yml, JSON otherwise)")
}

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Validate one or more metadata documents",
	Long: `Validate metadata documents and print a status line for each.

Documents are decoded by extension: .yaml and .yml as YAML, .toml as TOML,
anything else as JSON. A file that cannot be read or decoded is reported as
FAILED and does not stop the remaining files.

The exit code is 0 when every file passes and 1 otherwise.`,
	Example: `  # Validate a document
  distcheck check metadata.json

  # Machine-readable output
  distcheck check --format json dist/*.json

  # Keep a YAML report alongside the terminal output
  distcheck check --report report.yaml metadata.json

See Also: distcheck fields`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckCmd(cmd, args)
	},
}

// checkOptions are the effective settings of one check run.
type checkOptions struct {
	Strict      bool
	Format      validator.Format
	MaxFileSize int64
	Report      string
}

// runCheckCmd merges flags over the loaded configuration and runs the check.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	opts, err := resolveCheckOptions(cmd)
	if err != nil {
		return err
	}
	return runCheck(cmd.Context(), cmd.OutOrStdout(), args, opts)
}

func resolveCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	opts := checkOptions{
		Strict: checkStrict,
		Format: validator.FormatText,
	}
	format := checkFormat

	if cfg != nil {
		opts.MaxFileSize = cfg.MaxFileSize
		if !cmd.Flags().Changed("strict") {
			opts.Strict = cfg.Strict
		}
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			format = cfg.Format
		}
	}

	f, err := validator.ParseFormat(format)
	if err != nil {
		return opts, errors.NewUserError(err, "Use --format text or --format json")
	}
	opts.Format = f
	opts.Report = checkReport
	return opts, nil
}

// runCheck validates every path in order and writes the results to w.
func runCheck(ctx context.Context, w io.Writer, paths []string, opts checkOptions) error {
	logger := logging.FromContext(ctx)
	v := metadata.New(metadata.WithStrict(opts.Strict))
	reporter := validator.NewReporter(w, opts.Format)

	entries := make([]validator.Entry, 0, len(paths))
	failed := 0
	for _, path := range paths {
		entry := checkFile(ctx, v, path, opts.MaxFileSize)
		if entry.Status() != validator.StatusOK {
			failed++
		}
		entries = append(entries, entry)
		if err := reporter.Detail(entry); err != nil {
			return errors.Wrap(err, "writing details")
		}
	}

	if err := reporter.Summary(entries); err != nil {
		return errors.Wrap(err, "writing summary")
	}

	if opts.Report != "" {
		if err := writeReport(opts.Report, validator.BuildReport(entries)); err != nil {
			return errors.NewSystemError(err, "Check that the report directory exists and is writable")
		}
		logger.Info("report written", "path", opts.Report)
	}

	if failed > 0 {
		err := errors.Wrapf(errors.ErrValidationFailed, "%d of %d files failed", failed, len(paths))
		return errors.NewUserError(err, "")
	}
	return nil
}

// checkFile reads, decodes and validates a single file. Failures are
// recorded in the returned entry.
func checkFile(ctx context.Context, v *metadata.Validator, path string, limit int64) validator.Entry {
	logger := logging.FromContext(ctx).With("path", path)
	logger.Info("checking file")

	data, err := fileutil.ReadFileWithLimit(path, limit)
	if err != nil {
		logger.Debug("read failed", "error", err)
		return validator.Entry{Path: path, Err: err}
	}

	format := metadata.FormatFromPath(path)
	doc, err := metadata.Decode(data, format)
	if err != nil {
		logger.Debug("decode failed", "format", format, "error", err)
		return validator.Entry{Path: path, Err: err}
	}

	result, err := v.Validate(doc)
	if err != nil {
		logger.Debug("document rejected", "error", err)
		return validator.Entry{Path: path, Err: err}
	}

	for _, issue := range result.Issues {
		logger.Log(ctx, logging.LevelTrace, "issue",
			"field", issue.Field,
			"code", issue.Code,
			"severity", issue.Severity,
			"message", issue.Message,
		)
	}
	logger.Debug("validated", "issues", len(result.Issues), "valid", result.Valid())
	return validator.Entry{Path: path, Result: result}
}

func writeReport(path string, report validator.Report) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return fileutil.AtomicWriteYAML(path, report)
	default:
		return fileutil.AtomicWriteJSON(path, report)
	}
}
