package runner

import (
	"time"

	"github.com/yaklabco/blockmark/pkg/block"
)

// FileOutcome describes what happened to one source document.
type FileOutcome struct {
	// Path is the source file that was processed.
	Path string

	// Output is the path the rendered HTML was written to.
	Output string

	// Bytes is the size of the rendered HTML.
	Bytes int

	// Written is false when the output already held the rendered HTML.
	Written bool

	// Blocks counts the blocks emitted per kind.
	Blocks block.Stats

	// Duration is the time spent reading, rendering and writing the file.
	Duration time.Duration

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files rendered without error.
	FilesRendered int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// FilesUnchanged is the number of outputs that already held the rendered HTML.
	FilesUnchanged int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BytesRendered is the total size of the rendered HTML.
	BytesRendered int

	// Blocks counts emitted blocks per kind across all files.
	Blocks block.Stats
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to render or write.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{Blocks: make(block.Stats)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BytesRendered += outcome.Bytes
	r.Stats.Blocks.Add(outcome.Blocks)
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
