package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blockmark/internal/cli"
	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/markup"
	"github.com/yaklabco/blockmark/pkg/reporter"
)

const guideDocument = "# Guide {#top}\n\nSome *text*.\n\n* one\n* two\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRender_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		overrides config.Overrides
	}{
		{name: "no paths", args: []string{"render"}},
		{name: "dash", args: []string{"render", "-"}},
		{
			name:      "pretty",
			args:      []string{"render", "--pretty"},
			overrides: config.Overrides{Pretty: config.Bool(true)},
		},
		{
			name:      "source indices",
			args:      []string{"render", "--source-indices", "-"},
			overrides: config.Overrides{SourceIndices: config.Bool(true)},
		},
		{
			name: "staged matches synchronous",
			args: []string{"render", "--staged"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, guideDocument, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, markup.Compile(guideDocument, tt.overrides), stdout)
		})
	}
}

func TestRender_StdinPretty(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "* a\n* b", "render", "--pretty")
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n", stdout)
}

func TestRender_SingleFileToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "guide.md")
	writeFile(t, src, guideDocument)

	stdout, stderr, err := execute(t, "", "render", src)
	require.NoError(t, err)

	assert.Equal(t, markup.Compile(guideDocument, config.Overrides{}), stdout)
	assert.Contains(t, stdout, `<h1 id="top">Guide</h1>`)
	assert.Empty(t, stderr)
	assert.NoFileExists(t, filepath.Join(dir, "guide.html"))
}

func TestRender_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), guideDocument)
	writeFile(t, filepath.Join(dir, "sub", "b.markdown"), "text")
	writeFile(t, filepath.Join(dir, "vendor", "c.md"), "skipped")
	writeFile(t, filepath.Join(dir, "notes.rst"), "skipped")

	stdout, stderr, err := execute(t, "", "render", dir, "--ignore", "**/vendor/**")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Rendered 2 files")
	assert.Equal(t, markup.Compile(guideDocument, config.Overrides{}), readFile(t, filepath.Join(dir, "a.html")))
	assert.Equal(t, "<p>text</p>\n", readFile(t, filepath.Join(dir, "sub", "b.html")))
	assert.NoFileExists(t, filepath.Join(dir, "vendor", "c.html"))
	assert.NoFileExists(t, filepath.Join(dir, "notes.html"))
}

func TestRender_OutDirAndExtension(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "# A")
	writeFile(t, filepath.Join(src, "b.md"), "# B")

	_, stderr, err := execute(t, "", "render", src, "--out-dir", out, "--ext", ".htm")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Rendered 2 files")
	assert.Equal(t, "<h1>A</h1>", readFile(t, filepath.Join(out, "a.htm")))
	assert.Equal(t, "<h1>B</h1>", readFile(t, filepath.Join(out, "b.htm")))
	assert.NoFileExists(t, filepath.Join(src, "a.html"))
}

func TestRender_SingleFileWithOutDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "a.md"), "# A")

	stdout, _, err := execute(t, "", "render", filepath.Join(src, "a.md"), "--out-dir", out)
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Equal(t, "<h1>A</h1>", readFile(t, filepath.Join(out, "a.html")))
}

func TestRender_SecondRunUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")

	_, _, err := execute(t, "", "render", dir)
	require.NoError(t, err)

	_, stderr, err := execute(t, "", "render", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "1 unchanged")
}

func TestRender_JSONSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), guideDocument)

	_, stderr, err := execute(t, "", "render", dir, "--format", "json")
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stderr), &output))
	assert.Equal(t, 1, output.Summary.FilesRendered)
	require.Len(t, output.Files, 1)
	assert.Equal(t, 1, output.Files[0].Blocks["heading"])
}

func TestRender_OutputIsSourceFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")

	_, stderr, err := execute(t, "", "render", dir, "--ext", ".md")
	require.ErrorIs(t, err, cli.ErrRenderFailed)
	assert.Equal(t, cli.ExitRenderErrors, cli.ExitCodeFromError(err))
	assert.Contains(t, stderr, "1 failed")
	assert.Equal(t, "# A", readFile(t, filepath.Join(dir, "a.md")))
}

func TestRender_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative jobs", args: []string{"render", "--jobs=-1", "-"}},
		{name: "unknown format", args: []string{"render", "--format", "xml", "-"}},
		{name: "bad extension", args: []string{"render", "--ext", "html", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "# x", tt.args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
		})
	}
}

func TestRender_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yml")

	_, _, err := execute(t, "# x", "render", "--config", missing)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestRender_ExplicitConfig(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "blockmark.yml")
	writeFile(t, cfgPath, "pretty: true\n")

	stdout, _, err := execute(t, "* a\n* b", "render", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>\n", stdout)

	stdout, _, err = execute(t, "* a\n* b", "render", "--config", cfgPath, "--pretty=false")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>\n", stdout, "flag overrides config file")
}

func TestRender_MixedStdinAndPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")

	_, _, err := execute(t, "", "render", "-", dir)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}
