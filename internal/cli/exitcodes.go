package cli

import (
	"errors"

	"github.com/yaklabco/blockmark/internal/configloader"
	"github.com/yaklabco/blockmark/pkg/fsutil"
	"github.com/yaklabco/blockmark/pkg/runner"
)

// ErrRenderFailed is returned when at least one file could not be rendered.
var ErrRenderFailed = errors.New("one or more files failed to render")

// Exit codes for blockmark.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitRenderErrors indicates the run completed but some files failed.
	ExitRenderErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitRenderErrors
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailed):
		return ExitRenderErrors
	case errors.As(err, &validationErr), errors.Is(err, errInvalidConfig):
		return ExitConfigError
	case errors.Is(err, errInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
