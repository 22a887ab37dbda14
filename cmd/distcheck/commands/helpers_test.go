package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/viper"
)

const validDoc = `{
  "Metadata-Version": "2.0",
  "Name": "foo",
  "Version": "1.0",
  "Summary": "A package"
}`

// writeFile creates name under dir with the given content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// resetFlags restores every package-level flag variable to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbosity, quiet = 0, false
	logFormat, logFile, configPath = "text", "", ""
	checkStrict, checkFormat, checkReport = false, "text", ""
	fieldsInteractive = false
	if err := genDocCmd.Flags().Set("dir", ""); err != nil {
		t.Fatalf("resetting --dir: %v", err)
	}
}

// executeCommand runs the root command with args, isolated from the user's
// configuration, and returns what it wrote to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(t)
	noColor(t)
	viper.Reset()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Chdir(t.TempDir())
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}
