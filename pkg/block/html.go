package block

import (
	"strings"

	"github.com/yaklabco/blockmark/pkg/cursor"
)

// blockTags lists the HTML elements that open a raw HTML block. Any other tag
// at the start of a block is treated as inline markup of a paragraph.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "canvas": {},
	"dd": {}, "div": {}, "dl": {}, "dt": {}, "fieldset": {}, "figcaption": {},
	"figure": {}, "footer": {}, "form": {}, "h1": {}, "h2": {}, "h3": {},
	"h4": {}, "h5": {}, "h6": {}, "header": {}, "hgroup": {}, "hr": {},
	"noscript": {}, "ol": {}, "output": {}, "p": {}, "pre": {}, "section": {},
	"table": {}, "ul": {},
}

// IsBlockTag reports whether name opens a raw HTML block.
func IsBlockTag(name string) bool {
	_, ok := blockTags[strings.ToLower(name)]
	return ok
}

// tryHTML passes block-level HTML through untouched. Comments run up to the
// closing "-->"; elements run up to their matching closing tag.
func (c *Compiler) tryHTML(w *cursor.Cursor) bool {
	if !w.At("<") {
		return false
	}
	start := w.Position()

	if w.At("<!--") {
		end, ok := w.IndexOf("-->")
		if !ok {
			return false
		}
		end += len("-->")
		c.out.Append(w.Substring(start, end))
		w.StartFrom(end)
		c.record(KindRawHTML, c.blockSrc)
		return true
	}

	tagEnd, ok := w.IndexOf(">")
	if !ok {
		return false
	}
	name, selfClosing, ok := parseOpeningTag(w.Substring(start, tagEnd+1))
	if !ok || !IsBlockTag(name) {
		return false
	}

	end := tagEnd + 1
	if !selfClosing && name != "hr" {
		w.StartFrom(end)
		if !scrollToClosingTag(w, name) {
			w.StartFrom(start)
			return false
		}
		end = w.Position()
	}

	c.inline.EmitPlain(w.Sub(start, end))
	w.StartFrom(end)
	c.record(KindRawHTML, c.blockSrc)
	return true
}

// parseOpeningTag extracts the lowercased element name of an opening tag such
// as `<div class="x">`. Closing tags and malformed names are rejected.
func parseOpeningTag(tag string) (string, bool, bool) {
	if len(tag) < 3 || tag[0] != '<' || !isASCIILetter(tag[1]) {
		return "", false, false
	}

	i := 1
	for i < len(tag) && isASCIILetter(tag[i]) {
		i++
	}
	for i < len(tag) && tag[i] >= '0' && tag[i] <= '9' {
		i++
	}
	if !isTagBoundary(tag[i]) {
		return "", false, false
	}

	return strings.ToLower(tag[1:i]), strings.HasSuffix(tag, "/>"), true
}

// scrollToClosingTag moves w past the closing tag matching an already
// consumed opening tag. Nested openings of the same element must be closed
// first. It reports false when the element is never closed.
func scrollToClosingTag(w *cursor.Cursor, name string) bool {
	opening, closing := "<"+name, "</"+name
	depth := 1
	for w.HasCurrent() {
		switch {
		case atTagName(w, closing):
			if _, ok := skipTag(w); !ok {
				return false
			}
			depth--
			if depth == 0 {
				return true
			}
		case atTagName(w, opening):
			selfClosing, ok := skipTag(w)
			if !ok {
				return false
			}
			if !selfClosing {
				depth++
			}
		default:
			w.Skip(1)
		}
	}
	return false
}

// atTagName reports whether w is at prefix (case-insensitive) followed by a
// tag boundary, so that "<div" does not match "<divider".
func atTagName(w *cursor.Cursor, prefix string) bool {
	if !w.AtInsensitive(prefix) {
		return false
	}
	return cursor.Lookahead(w, func(l *cursor.Cursor) bool {
		l.Skip(len(prefix))
		return l.HasCurrent() && isTagBoundary(l.Current())
	})
}

// skipTag moves w past the next '>' and reports whether the tag was
// self-closing.
func skipTag(w *cursor.Cursor) (bool, bool) {
	var prev byte
	for w.HasCurrent() && !w.At(">") {
		prev = w.Current()
		w.Skip(1)
	}
	if !w.HasCurrent() {
		return false, false
	}
	w.Skip(1)
	return prev == '/', true
}

func isTagBoundary(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}

func isASCIILetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}
