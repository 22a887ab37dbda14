// Package main is the entry point for the distcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/distcheck/cmd/distcheck/commands"
	"github.com/thoreinstein/distcheck/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, exitErr.Suggestion)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
