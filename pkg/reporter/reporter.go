// Package reporter writes the summary of a batch render.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/blockmark/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for result. It returns the number of failed
	// files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// relativePath shortens path against the working directory when possible.
func relativePath(workingDir, path string) string {
	if workingDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil {
		return path
	}
	return rel
}
