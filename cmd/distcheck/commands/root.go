// Package commands implements the CLI commands for distcheck.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/distcheck/cmd"
	"github.com/thoreinstein/distcheck/internal/config"
	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/logging"
)

// debugEnv enables debug logging when no -v flag is given.
const debugEnv = "DISTCHECK_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// cfg is the configuration loaded before any command runs.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/distcheck/config.yaml)")

	addCheckFlags(rootCmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("distcheck version {{.Version}}\n")

	// Errors are printed by main together with their suggestion
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "distcheck [path...]",
	Short: "Validate package metadata documents",
	Long: `distcheck validates package metadata documents against the
Metadata-Version 2.0 schema.

Each document is checked for required fields, field types, a normalized
Version and well-formed dependency predicates. Failed files are described
in detail, followed by a one-line summary per file.

Running distcheck with paths is the same as running distcheck check.`,
	Example: `  # Validate two documents
  distcheck metadata.json other/metadata.json

  # Reject fields outside the schema
  distcheck check --strict metadata.json

  # List the recognized fields
  distcheck fields

  See Also: distcheck check, distcheck fields`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return applyConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runCheckCmd(cmd, args)
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	opts := logging.Options{
		Level:  logging.ResolveLevel(verbosity, quiet, os.Getenv(debugEnv)),
		Format: format,
		Output: cmd.ErrOrStderr(),
		Color:  config.ColorAuto,
	}
	if cfg != nil {
		opts.Color = cfg.Color
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		opts.File = f
	}

	logger := logging.New(opts)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// applyConfig reports config load errors and sets the report color mode.
func applyConfig(cmd *cobra.Command) error {
	// help, version and config edit must work with a broken config
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd == configEditCmd {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	color.NoColor = !logging.UseColor(cmd.OutOrStdout(), cfg.Color)

	logging.FromContext(cmd.Context()).Debug("configuration loaded",
		"file", config.Used(),
		"strict", cfg.Strict,
		"format", cfg.Format,
	)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
