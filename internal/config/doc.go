// Package config provides configuration management for the distcheck CLI.
//
// # Configuration File
//
// The configuration file is config.yaml, looked up in the current directory
// and then in the XDG config directory (see package paths):
//
//	version: 1
//	strict: false         # report fields the schema does not define
//	format: text          # text | json
//	max_file_size: 1048576
//	color: auto           # auto | always | never
//
// Every key can be overridden by an environment variable with the DISTCHECK_
// prefix, e.g. DISTCHECK_STRICT=true, and command line flags take precedence
// over both.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("") // search default locations
//
// [Load] validates the result; [Validate] returns every problem at once.
package config
