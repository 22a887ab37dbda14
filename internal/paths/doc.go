// Package paths follows the XDG base directory specification through
// github.com/adrg/xdg, so the configuration lives in the platform's usual
// place:
//
//	Linux:   ~/.config/distcheck/config.yaml
//	macOS:   ~/Library/Application Support/distcheck/config.yaml
//	Windows: %LOCALAPPDATA%\distcheck\config.yaml
package paths
