package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string         `json:"path"`
	Output     string         `json:"output,omitempty"`
	Bytes      int            `json:"bytes"`
	Written    bool           `json:"written"`
	Blocks     map[string]int `json:"blocks,omitempty"`
	DurationMS float64        `json:"durationMs"`
	Error      string         `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesRendered   int            `json:"filesRendered"`
	FilesWritten    int            `json:"filesWritten"`
	FilesUnchanged  int            `json:"filesUnchanged"`
	FilesErrored    int            `json:"filesErrored"`
	BytesRendered   int            `json:"bytesRendered"`
	TotalBlocks     int            `json:"totalBlocks"`
	Blocks          map[string]int `json:"blocks"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{Blocks: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:       relativePath(r.opts.WorkingDir, file.Path),
			Output:     relativePath(r.opts.WorkingDir, file.Output),
			Bytes:      file.Bytes,
			Written:    file.Written,
			Blocks:     kindCounts(file.Blocks),
			DurationMS: float64(file.Duration.Microseconds()) / 1000,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesRendered = stats.FilesRendered
	output.Summary.FilesWritten = stats.FilesWritten
	output.Summary.FilesUnchanged = stats.FilesUnchanged
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.BytesRendered = stats.BytesRendered
	output.Summary.TotalBlocks = stats.Blocks.Total()
	if counts := kindCounts(stats.Blocks); counts != nil {
		output.Summary.Blocks = counts
	}

	return output
}

// kindCounts keys block counts by kind name. It returns nil when empty.
func kindCounts(stats block.Stats) map[string]int {
	if len(stats) == 0 {
		return nil
	}
	counts := make(map[string]int, len(stats))
	for kind, n := range stats {
		counts[kind.String()] = n
	}
	return counts
}
