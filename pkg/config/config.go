// Package config defines core configuration types for blockmark.
// These types are pure data structures with no dependency on how they are loaded.
package config

// OutputFormat specifies the format of the run summary.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// DefaultOutputExtension is the extension given to rendered files.
const DefaultOutputExtension = ".html"

// OutputConfig controls where rendered files are written.
type OutputConfig struct {
	// Dir is the directory rendered files are written to.
	// Empty means next to the source file.
	Dir string `yaml:"dir,omitempty"`

	// Extension replaces the source extension, including the leading dot.
	Extension string `yaml:"extension,omitempty"`
}

// Config is the root configuration structure for blockmark.
type Config struct {
	// Pretty runs the rendered HTML through the pretty-printer.
	Pretty *bool `yaml:"pretty,omitempty"`

	// SourceIndices annotates block elements with their source offset.
	SourceIndices *bool `yaml:"source_indices,omitempty"`

	// DetectLanguage tags fenced code with a detected language class.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Inline holds inline compiler options.
	Inline InlineConfig `yaml:"inline,omitempty"`

	// Output configures rendered file placement.
	Output OutputConfig `yaml:"output,omitempty"`

	// Extensions are the source file extensions picked up in directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Staged renders through the staged driver instead of the synchronous path.
	Staged bool `yaml:"-"`

	// Format specifies the summary output format.
	Format OutputFormat `yaml:"-"`
}

// InlineConfig mirrors InlineOptions with optional fields.
type InlineConfig struct {
	Typographics *bool `yaml:"typographics,omitempty"`
	HardWraps    *bool `yaml:"hard_wraps,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	defaults := Defaults()
	return &Config{
		Pretty:         Bool(defaults.Pretty),
		SourceIndices:  Bool(defaults.SourceIndices),
		DetectLanguage: Bool(defaults.DetectLanguage),
		Inline: InlineConfig{
			Typographics: Bool(defaults.Inline.Typographics),
			HardWraps:    Bool(defaults.Inline.HardWraps),
		},
		Output: OutputConfig{
			Extension: DefaultOutputExtension,
		},
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}

// DefaultExtensions returns the default set of source file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// Overrides converts the configuration into compile option overrides.
func (c *Config) Overrides() Overrides {
	if c == nil {
		return Overrides{}
	}
	return Overrides{
		Pretty:         c.Pretty,
		SourceIndices:  c.SourceIndices,
		DetectLanguage: c.DetectLanguage,
		Typographics:   c.Inline.Typographics,
		HardWraps:      c.Inline.HardWraps,
	}
}

// Options resolves the compile options for this configuration.
func (c *Config) Options() Options {
	return Merge(Defaults(), c.Overrides())
}

// OutputExtension returns the configured output extension or the default.
func (c *Config) OutputExtension() string {
	if c == nil || c.Output.Extension == "" {
		return DefaultOutputExtension
	}
	return c.Output.Extension
}
