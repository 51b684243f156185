package runner_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/runner"
)

func readOutput(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	for _, staged := range []bool{false, true} {
		t.Run(fmt.Sprintf("staged=%v", staged), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("* x\n* y"), 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n\ntext"), 0o644))

			result, err := runner.New(nil).Run(context.Background(), runner.Options{
				WorkingDir: dir,
				Jobs:       2,
				Staged:     staged,
				Config:     config.NewConfig(),
			})
			require.NoError(t, err)

			require.Len(t, result.Files, 2)
			assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
			assert.Equal(t, filepath.Join(dir, "b.md"), result.Files[1].Path)

			assert.Equal(t, "<h1>A</h1><p>text</p>\n", readOutput(t, filepath.Join(dir, "a.html")))
			assert.Equal(t, "<ul><li>x</li><li>y</li></ul>\n", readOutput(t, filepath.Join(dir, "b.html")))

			assert.Equal(t, 2, result.Stats.FilesRendered)
			assert.Equal(t, 2, result.Stats.FilesWritten)
			assert.Equal(t, 1, result.Stats.Blocks[block.KindHeading])
			assert.Equal(t, 2, result.Stats.Blocks[block.KindListItem])
			assert.Equal(t, 3, result.Stats.Blocks.Total())
		})
	}
}

func TestRunner_Run_OutDirAndOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "guide/intro.md")

	cfg := config.NewConfig()
	cfg.SourceIndices = config.Bool(true)
	cfg.Output = config.OutputConfig{Dir: filepath.Join(dir, "site"), Extension: ".htm"}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"site/**"},
		Config:       cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	out := filepath.Join(dir, "site", "guide", "intro.htm")
	assert.Equal(t, out, result.Files[0].Output)
	assert.Equal(t, `<h1 data-src="0">guide/intro.md</h1>`, readOutput(t, out))
}

func TestRunner_Run_Unchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")
	opts := runner.Options{WorkingDir: dir}

	first, err := runner.New(nil).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.FilesWritten)

	second, err := runner.New(nil).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Stats.FilesWritten)
	assert.Equal(t, 1, second.Stats.FilesUnchanged)
}

func TestRunner_Run_OutputIsSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "page.html")

	cfg := config.NewConfig()
	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Paths:      []string{"page.html"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].Error, runner.ErrOutputIsSource)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_Logs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md")

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := runner.New(logger).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "kind=heading")
}
