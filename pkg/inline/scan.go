package inline

import (
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/blockmark/pkg/cursor"
)

// contentEnd returns the buffer offset just past the last non-whitespace
// character of w.
func contentEnd(w *cursor.Cursor) int {
	return cursor.Lookahead(w, func(l *cursor.Cursor) int {
		last := l.Position()
		for l.HasCurrent() {
			ws := isWhitespace(l.Current())
			l.Skip(1)
			if !ws {
				last = l.Position()
			}
		}
		return last
	})
}

// countRun skips a run of ch and returns its length.
func countRun(w *cursor.Cursor, ch byte) int {
	n := 0
	for w.HasCurrent() && w.Current() == ch {
		w.Skip(1)
		n++
	}
	return n
}

// findClosing locates the marker closing an emphasis span opened just before
// the current position. Escaped characters and doubled single-char markers
// are stepped over.
func findClosing(w *cursor.Cursor, marker string) (int, bool) {
	at := cursor.Lookahead(w, func(l *cursor.Cursor) int {
		var prev byte
		for l.HasCurrent() {
			if l.At(`\`) {
				prev = '\\'
				l.Skip(2)
				continue
			}
			if len(marker) == 1 && l.At(marker+marker) {
				prev = marker[0]
				l.Skip(2)
				continue
			}
			if l.At(marker) && prev != 0 && !isWhitespace(prev) {
				return l.Position()
			}
			prev = l.Current()
			l.Skip(1)
		}
		return -1
	})
	return at, at >= 0
}

// scanLinkParts reads [text](destination "title") starting at '['. On success
// w is moved past the closing parenthesis; on failure its position is
// unspecified and the caller must restore it.
func scanLinkParts(w *cursor.Cursor) (*cursor.Cursor, string, string, bool) {
	if !w.At("[") {
		return nil, "", "", false
	}
	w.Skip(1)
	textStart := w.Position()

	depth := 0
	closed := false
	for w.HasCurrent() && !closed {
		switch {
		case w.At(`\`):
			w.Skip(2)
			continue
		case w.At("["):
			depth++
		case w.At("]"):
			if depth == 0 {
				closed = true
				continue
			}
			depth--
		}
		w.Skip(1)
	}
	if !closed {
		return nil, "", "", false
	}
	textEnd := w.Position()
	w.Skip(1)

	if !w.At("(") {
		return nil, "", "", false
	}
	w.Skip(1).SkipSpaces()

	destStart := w.Position()
	for w.HasCurrent() && !w.At(")") && !isWhitespace(w.Current()) {
		w.Skip(1)
	}
	dest := w.Substring(destStart, w.Position())
	w.SkipSpaces()

	var title string
	if w.At(`"`) {
		w.Skip(1)
		titleStart := w.Position()
		w.ScrollTo(`"`)
		if !w.At(`"`) {
			return nil, "", "", false
		}
		title = w.Substring(titleStart, w.Position())
		w.Skip(1).SkipSpaces()
	}

	if !w.At(")") {
		return nil, "", "", false
	}
	w.Skip(1)

	return w.Sub(textStart, textEnd), dest, title, true
}

func escapeURL(url string) string {
	return string(util.EscapeHTML(util.URLEscape([]byte(url), false)))
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isAlnum(ch byte) bool {
	return isLetter(ch) || ch >= '0' && ch <= '9'
}
