// Package cmd holds the build metadata of the distcheck binary.
package cmd

// Set via -ldflags "-X github.com/thoreinstein/distcheck/cmd.Version=...".
var (
	// Version is the release the binary was built from.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
