package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/fsutil"
	"github.com/yaklabco/blockmark/pkg/markup"
)

// ErrOutputIsSource is returned for a file whose output path would overwrite
// the file itself.
var ErrOutputIsSource = errors.New("output path equals source path")

// Runner renders documents to HTML files.
type Runner struct {
	logger *log.Logger
}

// New creates a Runner. A nil logger disables logging.
func New(logger *log.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run discovers files under opts.Paths and renders them concurrently. Each
// document gets its own compiler. Outcomes are returned in path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	r.debug("discovered files", "files_discovered", len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	job := renderJob{
		workDir: workDir,
		cfg:     opts.effectiveConfig(),
		staged:  opts.Staged,
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, job, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

type renderJob struct {
	workDir string
	cfg     *config.Config
	staged  bool
}

func (r *Runner) worker(ctx context.Context, job renderJob, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.renderFile(ctx, job, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) renderFile(ctx context.Context, job renderJob, path string) FileOutcome {
	started := time.Now()
	outcome := FileOutcome{
		Path:   path,
		Output: fsutil.OutputPath(path, job.workDir, job.cfg.Output.Dir, job.cfg.OutputExtension()),
	}

	if filepath.Clean(outcome.Output) == filepath.Clean(path) {
		outcome.Error = fmt.Errorf("%w: %s", ErrOutputIsSource, path)
		return outcome
	}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	html, stats, err := r.render(ctx, job, path, string(content))
	if err != nil {
		outcome.Error = fmt.Errorf("render %s: %w", path, err)
		return outcome
	}

	written, err := fsutil.WriteIfChanged(ctx, outcome.Output, []byte(html), 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
		return outcome
	}

	outcome.Bytes = len(html)
	outcome.Written = written
	outcome.Blocks = stats
	outcome.Duration = time.Since(started)

	r.debug("rendered", "path", path, "output", outcome.Output,
		"blocks", stats.Total(), "bytes", outcome.Bytes, "duration", outcome.Duration)

	return outcome
}

func (r *Runner) render(ctx context.Context, job renderJob, path, text string) (string, block.Stats, error) {
	var options []block.Option
	if r.logger != nil {
		options = append(options, block.WithLogger(r.logger.With("path", path)))
	}

	if !job.staged {
		html, stats := markup.CompileWithStats(text, job.cfg.Overrides(), options...)
		return html, stats, nil
	}

	session := block.NewSession(text, job.cfg.Options(), options...)
	html, err := session.Drain(ctx)
	if err != nil {
		return "", nil, err
	}
	return html, session.Stats(), nil
}

func (r *Runner) debug(msg string, keyvals ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, keyvals...)
	}
}
