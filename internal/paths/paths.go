// Package paths resolves the file system locations distcheck reads from.
package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user directories of the tool.
const AppName = "distcheck"

// ConfigFileName is the base name of the configuration file, without extension.
const ConfigFileName = "config"

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory holding the user configuration file.
// Returns: <ConfigHome>/distcheck
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default configuration file path.
// Returns: <ConfigHome>/distcheck/config.yaml
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName+".yaml")
}
