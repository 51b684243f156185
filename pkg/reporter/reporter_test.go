package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/reporter"
	"github.com/yaklabco/blockmark/pkg/runner"
)

func sampleResult(dir string) *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:    filepath.Join(dir, "a.md"),
				Output:  filepath.Join(dir, "a.html"),
				Bytes:   40,
				Written: true,
				Blocks:  block.Stats{block.KindHeading: 1, block.KindParagraph: 2},
			},
			{
				Path:  filepath.Join(dir, "b.md"),
				Error: errors.New("file not found"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2,
			FilesRendered:   1,
			FilesWritten:    1,
			FilesErrored:    1,
			BytesRendered:   40,
			Blocks:          block.Stats{block.KindHeading: 1, block.KindParagraph: 2},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.IsType(t, &reporter.TextReporter{}, rep)

	rep, err = reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: reporter.FormatJSON})
	require.NoError(t, err)
	assert.IsType(t, &reporter.JSONReporter{}, rep)

	_, err = reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("failures and one-line summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: dir})

		failed, err := rep.Report(context.Background(), sampleResult(dir))
		require.NoError(t, err)
		assert.Equal(t, 1, failed)
		assert.Equal(t,
			"b.md: error: file not found\nRendered 1 file (3 blocks, 40 B), 1 failed\n",
			buf.String())
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: dir, Verbose: true})

		_, err := rep.Report(context.Background(), sampleResult(dir))
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "a.md -> a.html\n")
		assert.Contains(t, out, "b.md: error: file not found")
		assert.Contains(t, out, "Summary")
		assert.Contains(t, out, "paragraph")
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

		failed, err := rep.Report(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, failed)
		assert.Equal(t, "No files to render.\n", buf.String())
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: dir, Compact: true})

	failed, err := rep.Report(context.Background(), sampleResult(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 2)
	assert.Equal(t, "a.md", output.Files[0].Path)
	assert.Equal(t, "a.html", output.Files[0].Output)
	assert.Equal(t, map[string]int{"heading": 1, "paragraph": 2}, output.Files[0].Blocks)
	assert.Equal(t, "file not found", output.Files[1].Error)

	assert.Equal(t, 2, output.Summary.FilesDiscovered)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, 3, output.Summary.TotalBlocks)
	assert.Equal(t, 2, output.Summary.Blocks["paragraph"])
}

func TestJSONReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Empty(t, output.Files)
	assert.NotNil(t, output.Summary.Blocks)
}
