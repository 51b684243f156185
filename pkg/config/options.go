package config

// InlineOptions are passed through to the inline compiler untouched.
type InlineOptions struct {
	// Typographics replaces "--", "..." and "(c)" with typographic entities.
	Typographics bool `yaml:"typographics"`

	// HardWraps turns line breaks inside paragraphs into <br/>.
	HardWraps bool `yaml:"hard_wraps"`
}

// Options controls a single compile or render call.
type Options struct {
	// Pretty runs the final HTML through the pretty-printer.
	Pretty bool

	// SourceIndices annotates block elements with a data-src attribute holding
	// the byte offset where the block starts in the document.
	SourceIndices bool

	// DetectLanguage adds a language-* class to fenced code.
	DetectLanguage bool

	// Inline holds options consumed only by the inline compiler.
	Inline InlineOptions
}

// Defaults returns the built-in compile options. The value is a fresh copy on
// every call, so callers can never alter the template.
func Defaults() Options {
	return Options{}
}

// Overrides holds explicitly set options. Nil fields leave the base value alone.
type Overrides struct {
	Pretty         *bool
	SourceIndices  *bool
	DetectLanguage *bool
	Typographics   *bool
	HardWraps      *bool
}

// Merge applies overrides on top of base. The merge is shallow and set
// override fields always win.
func Merge(base Options, overrides Overrides) Options {
	result := base

	if overrides.Pretty != nil {
		result.Pretty = *overrides.Pretty
	}
	if overrides.SourceIndices != nil {
		result.SourceIndices = *overrides.SourceIndices
	}
	if overrides.DetectLanguage != nil {
		result.DetectLanguage = *overrides.DetectLanguage
	}
	if overrides.Typographics != nil {
		result.Inline.Typographics = *overrides.Typographics
	}
	if overrides.HardWraps != nil {
		result.Inline.HardWraps = *overrides.HardWraps
	}

	return result
}

// Bool returns a pointer to v, for building Overrides literals.
func Bool(v bool) *bool {
	return &v
}
