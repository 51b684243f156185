// Package langdetect guesses the language of fenced code so that rendered
// code elements can carry a language-* class for syntax highlighters.
//
// Detection runs in three stages: an interpreter line (#!), a table of
// highly indicative patterns, and finally the go-enry classifier restricted
// to a list of common languages. Anything uncertain is reported as "text".
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is reported when no language could be determined.
const Text = "text"

// ClassPrefix is prepended to the language name by Class.
const ClassPrefix = "language-"

// Language names produced by the pattern stage.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langCSS        = "css"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// minYAMLKeys is the number of key: value lines needed to call content YAML.
const minYAMLKeys = 2

// pattern maps a cheap content check to a language.
type pattern struct {
	lang  string
	match func(content []byte) bool
}

// patterns are checked in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{langGo, looksLikeGo},
	{langPython, looksLikePython},
	{langHTML, looksLikeHTML},
	{langJSON, looksLikeJSON},
	{langDockerfile, looksLikeDockerfile},
	{langSQL, looksLikeSQL},
	{langRust, looksLikeRust},
	{langCSS, looksLikeCSS},
	{langJavaScript, looksLikeJavaScript},
	{langBash, looksLikeShellSession},
	{langYAML, looksLikeYAML},
}

// classifierCandidates restricts the go-enry classifier to common languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns the language of code content, or Text when unsure.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(trimmed); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(trimmed, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Class returns the class attribute value for code content, or an empty
// string when the language is unknown.
func Class(content []byte) string {
	lang := Detect(content)
	if lang == Text {
		return ""
	}
	return ClassPrefix + lang
}

func looksLikeGo(content []byte) bool {
	return bytes.HasPrefix(content, []byte("package ")) ||
		bytes.Contains(content, []byte("func main() {")) ||
		bytes.Contains(content, []byte(":= "))
}

func looksLikePython(content []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return true
	}
	// "from x import y" or a leading "import x"; Go uses "import (".
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		return strings.Contains(s, "from ") || strings.HasPrefix(s, "import ")
	}
	return false
}

func looksLikeHTML(content []byte) bool {
	lower := bytes.ToLower(content)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func looksLikeJSON(content []byte) bool {
	opens := content[0] == '{' || content[0] == '['
	closes := content[len(content)-1] == '}' || content[len(content)-1] == ']'
	return opens && closes && bytes.Contains(content, []byte(`"`))
}

func looksLikeDockerfile(content []byte) bool {
	return bytes.HasPrefix(content, []byte("FROM ")) ||
		bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN ")) ||
		bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))
}

func looksLikeSQL(content []byte) bool {
	upper := strings.ToUpper(string(content))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func looksLikeRust(content []byte) bool {
	s := string(content)
	return strings.Contains(s, "fn main()") ||
		strings.Contains(s, "println!") ||
		strings.Contains(s, "let mut ")
}

// looksLikeCSS matches rule sets such as "body { margin: 0; }".
func looksLikeCSS(content []byte) bool {
	open := bytes.IndexByte(content, '{')
	if open <= 0 || bytes.Contains(content[:open], []byte("(")) {
		return false
	}
	body := content[open:]
	return bytes.Contains(body, []byte(": ")) && bytes.Contains(body, []byte(";")) &&
		!bytes.Contains(body, []byte("=")) && !bytes.Contains(body, []byte(`"`))
}

func looksLikeJavaScript(content []byte) bool {
	s := string(content)
	for _, marker := range []string{"=>", "const ", "let ", "console.log", "function "} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// looksLikeShellSession matches transcripts where every command line starts
// with a "$ " prompt.
func looksLikeShellSession(content []byte) bool {
	return bytes.HasPrefix(content, []byte("$ "))
}

// looksLikeYAML counts "key: value" lines and root-level list items.
func looksLikeYAML(content []byte) bool {
	keys := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= minYAMLKeys
}

// normalize converts go-enry language names to class suffixes.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "C++":
		return "cpp"
	}
	return strings.ToLower(lang)
}
