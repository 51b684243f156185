package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/blockmark/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		// Shebangs win over content heuristics.
		{name: "bash shebang", content: "#!/bin/bash\necho hello", want: "bash"},
		{name: "sh shebang normalized", content: "#!/bin/sh\necho hello", want: "bash"},
		{name: "env python shebang", content: "#!/usr/bin/env python3\nprint('hello')", want: "python"},
		{name: "shebang beats python body", content: "#!/bin/bash\ndef foo():\n    pass", want: "bash"},

		{name: "go", content: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", want: "go"},
		{name: "go snippet without package clause", content: "x := compile(src)\nfmt.Println(x)", want: "go"},
		{name: "python", content: "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", want: "python"},
		{name: "javascript", content: "const x = () => { return 42; };\nconsole.log(x());", want: "javascript"},
		{name: "json", content: `{"key": "value", "number": 123}`, want: "json"},
		{name: "yaml", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", want: "yaml"},
		{name: "rust", content: "fn main() {\n    println!(\"Hello, world!\");\n}", want: "rust"},
		{name: "sql", content: "SELECT * FROM users WHERE id = 1;", want: "sql"},
		{
			name:    "html",
			content: "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			want:    "html",
		},
		{name: "dockerfile", content: "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", want: "dockerfile"},
		{name: "css", content: "body {\n  margin: 0;\n  color: red;\n}", want: "css"},
		{
			name:    "shell session",
			content: "$ go install ./cmd/blockmark\n$ blockmark render README.md",
			want:    "bash",
		},
		{name: "surrounding blank lines ignored", content: "\n\npackage main\n\n", want: "go"},

		// Anything unrecognized is plain text.
		{name: "prose", content: "just some text without any code patterns", want: langdetect.Text},
		{name: "empty", content: "", want: langdetect.Text},
		{name: "whitespace only", content: "  \n\t\n", want: langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "known language", content: "package main", want: "language-go"},
		{name: "normalized name", content: "#!/bin/sh\necho test", want: "language-bash"},
		{name: "plain text gets no class", content: "just words", want: ""},
		{name: "empty", content: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Class([]byte(tt.content)))
		})
	}
}
