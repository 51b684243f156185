package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option with its default value uncommented.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// optionDoc describes a documented option in the full template.
type optionDoc struct {
	Key         string
	Value       string
	Description string
}

// documentedOptions lists the options written by the full template, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var documentedOptions = []optionDoc{
	{"pretty", "false", "Re-indent the rendered HTML with the pretty-printer."},
	{"source_indices", "false",
		"Annotate every block element with a data-src attribute holding the byte offset " +
			"where the block starts in the source document. Useful for editor preview sync."},
	{"detect_language", "false",
		"Guess the language of fenced code and add a language-* class to the code element."},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Re-indent the rendered HTML
pretty: false

# Annotate block elements with their source offset (data-src)
# source_indices: false

# Add a language-* class to fenced code
# detect_language: false

# Inline markup options
# inline:
#   typographics: false
#   hard_wraps: false

# Where rendered files go (default: next to the source)
# output:
#   dir: public
#   extension: .html

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template with every option documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# This template lists every option with its default value.\n")

	for _, opt := range documentedOptions {
		fmt.Fprintf(&buf, "\n# %s\n", wrapComment(opt.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "%s: %s\n", opt.Key, opt.Value)
	}

	buf.WriteString(`
# Inline markup options
inline:
  # Replace --, ... and (c) with typographic entities
  typographics: false
  # Turn line breaks inside paragraphs into <br/>
  hard_wraps: false

# Where rendered files go
output:
  # Empty means next to the source file
  dir: ""
  extension: .html

# Source file extensions picked up when rendering directories
extensions:
`)
	for _, ext := range DefaultExtensions() {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}

	buf.WriteString(`
# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"
`)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := Defaults()
	cfg := map[string]any{
		"pretty":          defaults.Pretty,
		"source_indices":  defaults.SourceIndices,
		"detect_language": defaults.DetectLanguage,
		"inline": map[string]any{
			"typographics": defaults.Inline.Typographics,
			"hard_wraps":   defaults.Inline.HardWraps,
		},
		"output": map[string]any{
			"dir":       "",
			"extension": DefaultOutputExtension,
		},
		"extensions": DefaultExtensions(),
		"ignore":     []string{"vendor/**", "node_modules/**", ".git/**"},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# blockmark configuration
# See: https://github.com/yaklabco/blockmark`
}
