package cli

import (
	"errors"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// Exit codes for gomdfmt.
const (
	// ExitSuccess means every file is formatted, or was formatted.
	ExitSuccess = 0

	// ExitChanges means --check found files that would be reformatted.
	ExitChanges = 1

	// ExitUsage means invalid flags, arguments or configuration.
	ExitUsage = 2

	// ExitFailure means a file could not be read, parsed or written.
	ExitFailure = 3
)

// ErrFilesChanged signals ExitChanges. It carries no message worth logging.
var ErrFilesChanged = errors.New("files would be reformatted")

// ErrFilesFailed signals that at least one file failed.
var ErrFilesFailed = errors.New("some files could not be formatted")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrFilesChanged):
		return ExitChanges
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// resultError returns the error that reports result: failures first, then
// pending changes when check is set.
func resultError(result *runner.Result, check bool) error {
	switch {
	case result.HasErrors():
		return ErrFilesFailed
	case check && result.HasChanges():
		return ErrFilesChanged
	default:
		return nil
	}
}
