// Package main is the entry point for the gomdfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gomdfmt/internal/cli"
	"github.com/yaklabco/gomdfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	code := cli.ExitCode(err)
	if err != nil && !errors.Is(err, cli.ErrFilesChanged) {
		logging.Default().Error("gomdfmt failed", logging.FieldError, err)
	}
	return code
}
