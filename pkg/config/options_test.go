package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/blockmark/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		base      config.Options
		overrides config.Overrides
		want      config.Options
	}{
		{
			name: "no overrides keeps base",
			base: config.Options{Pretty: true},
			want: config.Options{Pretty: true},
		},
		{
			name:      "override wins",
			base:      config.Options{},
			overrides: config.Overrides{SourceIndices: config.Bool(true)},
			want:      config.Options{SourceIndices: true},
		},
		{
			name:      "explicit false overrides true",
			base:      config.Options{Pretty: true, DetectLanguage: true},
			overrides: config.Overrides{Pretty: config.Bool(false)},
			want:      config.Options{DetectLanguage: true},
		},
		{
			name: "inline options pass through",
			base: config.Options{},
			overrides: config.Overrides{
				Typographics: config.Bool(true),
				HardWraps:    config.Bool(true),
			},
			want: config.Options{Inline: config.InlineOptions{Typographics: true, HardWraps: true}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, config.Merge(testCase.base, testCase.overrides))
		})
	}
}

func TestDefaults_NotShared(t *testing.T) {
	t.Parallel()

	first := config.Defaults()
	first.Pretty = true

	assert.False(t, config.Defaults().Pretty)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestNilConfigOverrides(t *testing.T) {
	t.Parallel()

	var cfg *config.Config
	assert.Equal(t, config.Overrides{}, cfg.Overrides())
	assert.Equal(t, config.DefaultOutputExtension, cfg.OutputExtension())
}
