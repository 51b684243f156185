package block

import (
	"strings"

	"github.com/yaklabco/blockmark/pkg/cursor"
	"github.com/yaklabco/blockmark/pkg/fragment"
)

// Selector is the optional {#id .class} suffix of a block's first line.
type Selector struct {
	ID      string
	Classes []string
}

// IsZero reports whether the selector carries no attributes.
func (s Selector) IsZero() bool {
	return s.ID == "" && len(s.Classes) == 0
}

func (s Selector) emit(out *fragment.Buffer) {
	if s.ID != "" {
		out.Append(` id="`, s.ID, `"`)
	}
	if len(s.Classes) > 0 {
		out.Append(` class="`, strings.Join(s.Classes, " "), `"`)
	}
}

// stripSelector looks for a selector on the first line of w. When one is
// found it is excluded from w together with the spaces that follow it.
// Scanning stops at the first malformed selector. The cursor is left at its
// entry offset either way.
func stripSelector(w *cursor.Cursor) Selector {
	start := w.Position()
	defer w.StartFrom(start)

	for w.HasCurrent() && !w.AtNewLine() {
		if w.At(`\{`) {
			w.Skip(2)
			continue
		}
		if !w.At("{") {
			w.Skip(1)
			continue
		}

		open := w.Position()
		sel, ok := scanSelector(w.Skip(1))
		if !ok {
			return Selector{}
		}
		w.SkipSpaces()
		w.Exclude(open, w.Position())
		return sel
	}
	return Selector{}
}

// scanSelector reads "#id .class ...}" after the opening brace. At least one
// of id or class is required. Tokens may be separated by spaces.
func scanSelector(w *cursor.Cursor) (Selector, bool) {
	var sel Selector
	if w.SkipSpaces().At("#") {
		id := readIdentifier(w.Skip(1))
		if id == "" {
			return Selector{}, false
		}
		sel.ID = id
	}
	for w.SkipSpaces().At(".") {
		class := readIdentifier(w.Skip(1))
		if class == "" {
			return Selector{}, false
		}
		sel.Classes = append(sel.Classes, class)
	}
	if sel.IsZero() || !w.At("}") {
		return Selector{}, false
	}
	w.Skip(1)
	return sel, true
}

func readIdentifier(w *cursor.Cursor) string {
	end := cursor.Lookahead(w, func(l *cursor.Cursor) int {
		for l.AtIdentifier() {
			l.Skip(1)
		}
		return l.Position()
	})
	return w.YieldUntil(end)
}
