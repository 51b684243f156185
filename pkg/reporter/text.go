package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/blockmark/internal/ui/pretty"
	"github.com/yaklabco/blockmark/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, file := range result.Files {
		if file.Error == nil && !r.opts.Verbose {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatFileLine(file,
			relativePath(r.opts.WorkingDir, file.Path),
			relativePath(r.opts.WorkingDir, file.Output),
		))
	}

	if r.opts.Verbose {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	} else {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}
