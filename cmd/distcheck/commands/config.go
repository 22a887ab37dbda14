package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/distcheck/internal/config"
	"github.com/thoreinstein/distcheck/internal/editor"
	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/logging"
	"github.com/thoreinstein/distcheck/internal/paths"
	"github.com/thoreinstein/distcheck/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration distcheck runs with, after merging the config
file, DISTCHECK_* environment variables and defaults.

Configuration is read from ./config.yaml, then from
$XDG_CONFIG_HOME/distcheck/config.yaml, unless --config names a file.`,
	Example: `  # Show the configuration
  distcheck config

  # Show it with an environment override
  DISTCHECK_STRICT=true distcheck config

  # Create or change the user configuration
  distcheck config edit

See Also: distcheck check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), cfg, config.Used())
	},
}

func runConfigShow(w io.Writer, c *config.Config, used string) error {
	if c == nil {
		return errors.NewSystemError(errors.New("configuration not loaded"), "")
	}

	source := used
	if source == "" {
		source = fmt.Sprintf("(defaults; no file at %s)", paths.ConfigFile())
	}
	fmt.Fprintf(w, "# config file: %s\n", source)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	return errors.Wrap(enc.Close(), "encoding configuration")
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the configuration file in $EDITOR, falling back to $VISUAL, nano
and vi. The file named by --config is edited if given, otherwise
$XDG_CONFIG_HOME/distcheck/config.yaml. A missing file is created with the
default settings first. The edited file is validated when the editor exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configPath
		if path == "" {
			path = paths.ConfigFile()
		}
		return runConfigEdit(cmd.Context(), cmd.OutOrStdout(), path, editor.Open)
	},
}

// editFunc opens path for interactive editing.
type editFunc func(ctx context.Context, path string, out io.Writer) error

func runConfigEdit(ctx context.Context, w io.Writer, path string, edit editFunc) error {
	logger := logging.FromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
		}
		if err := fileutil.AtomicWriteYAML(path, config.Default()); err != nil {
			return errors.NewSystemError(err, "")
		}
		logger.Info("created config file", "path", path)
	}

	fmt.Fprintf(w, "Location: %s\n", path)
	if err := edit(ctx, path, w); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	fmt.Fprintln(w, "Configuration is valid.")
	return nil
}
