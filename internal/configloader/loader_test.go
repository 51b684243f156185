package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blockmark/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.Defaults(), result.Config.Options())
	assert.Equal(t, config.DefaultOutputExtension, result.Config.OutputExtension())
	assert.Equal(t, config.DefaultExtensions(), result.Config.Extensions)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), `
pretty: true
inline:
  typographics: true
output:
  dir: site
extensions: [".md"]
`)

	// Discovery walks upward from a nested directory.
	nested := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	opts := result.Config.Options()
	assert.True(t, opts.Pretty)
	assert.True(t, opts.Inline.Typographics)
	assert.False(t, opts.SourceIndices)
	assert.Equal(t, filepath.Join(dir, "site"), result.Config.Output.Dir)
	assert.Equal(t, []string{".md"}, result.Config.Extensions)
	assert.Equal(t, []string{filepath.Join(dir, ".blockmark.yml")}, result.LoadedFrom)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "pretty: true\n")
	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Empty(t, result.LoadedFrom)
	assert.False(t, result.Config.Options().Pretty)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "pretty: true\nsource_indices: true\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeConfig(t, explicit, "pretty: false\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.Config.Options().Pretty, "explicit false wins")
	assert.True(t, result.Config.Options().SourceIndices, "unset keys fall through")
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "detect_language: true\noutput:\n  extension: .htm\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{
		DetectLanguage: config.Bool(false),
		Jobs:           8,
		Staged:         true,
		Format:         config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.False(t, result.Config.Options().DetectLanguage)
	assert.Equal(t, ".htm", result.Config.OutputExtension())
	assert.Equal(t, 8, result.Config.Jobs)
	assert.True(t, result.Config.Staged)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
}

func TestLoad_UnknownKeyWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "pretty: true\nflavor: gfm\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown key "flavor"`)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"extension without dot", "output:\n  extension: html\n", "output.extension"},
		{"source extension with separator", "extensions: [\".md\", \"./x\"]\n", "extensions[1]"},
		{"bad glob", "ignore: [\"[oops\"]\n", "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, filepath.Join(dir, ".blockmark.yml"), tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "pretty: [unclosed\n")

	_, err := Load(context.Background(), isolated(dir))
	require.ErrorContains(t, err, "load project config")
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_UserConfig(t *testing.T) {
	// Not parallel: sets XDG_CONFIG_HOME.
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	writeConfig(t, filepath.Join(home, "blockmark", "config.yaml"), "source_indices: true\n")

	opts := isolated(t.TempDir())
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Config.Options().SourceIndices)
	assert.Equal(t, filepath.Join(home, "blockmark", "config.yaml"), result.Paths.User)
}

func TestLoad_Env(t *testing.T) {
	// Not parallel: sets environment variables.
	t.Setenv("BLOCKMARK_PRETTY", "true")
	t.Setenv("BLOCKMARK_JOBS", "3")
	t.Setenv("BLOCKMARK_IGNORE", "vendor/**, build/**")

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".blockmark.yml"), "pretty: false\n")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Config.Options().Pretty, "env beats project config")
	assert.Equal(t, 3, result.Config.Jobs)
	assert.Equal(t, []string{"vendor/**", "build/**"}, result.Config.Ignore)
}
