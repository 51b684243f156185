package block

import "github.com/yaklabco/blockmark/pkg/cursor"

// listMarker describes the item marker of one list flavor.
type listMarker struct {
	tag  string
	kind Kind
	at   func(w *cursor.Cursor) bool
	skip func(w *cursor.Cursor)
}

//nolint:gochecknoglobals // Immutable marker descriptions.
var (
	bulletMarker = listMarker{
		tag:  "ul",
		kind: KindUnorderedList,
		at:   func(w *cursor.Cursor) bool { return w.At("* ") },
		skip: func(w *cursor.Cursor) { w.Skip(2) },
	}
	numberMarker = listMarker{
		tag:  "ol",
		kind: KindOrderedList,
		at:   atNumberMarker,
		skip: func(w *cursor.Cursor) { w.SkipDigits().Skip(2) },
	}
)

// atNumberMarker reports whether w is at "<digits>. ".
func atNumberMarker(w *cursor.Cursor) bool {
	if !w.AtDigit() {
		return false
	}
	return cursor.Lookahead(w, func(l *cursor.Cursor) bool {
		return l.SkipDigits().At(". ")
	})
}

// tryUnorderedList matches a list whose items start with "* ".
func (c *Compiler) tryUnorderedList(w *cursor.Cursor) bool {
	if !w.At("* ") {
		return false
	}
	c.emitList(c.scanListRegion(w, bulletMarker), bulletMarker)
	return true
}

// tryOrderedList matches a list starting with "1. ". Later items may use any
// number.
func (c *Compiler) tryOrderedList(w *cursor.Cursor) bool {
	if !w.At("1. ") {
		return false
	}
	c.emitList(c.scanListRegion(w, numberMarker), numberMarker)
	return true
}

// scanListRegion finds the end of the list that starts at the current
// position. After every blank-line-delimited chunk the next line continues
// the list when it is indented beyond the block indent or is a marker line at
// the block indent. The region ends at the first other line.
func (c *Compiler) scanListRegion(w *cursor.Cursor, marker listMarker) *cursor.Cursor {
	start := w.Position()
	for w.HasCurrent() {
		w.ScrollToTerm().SkipBlankLines()
		if !w.AtSpaces(c.blockIndent) {
			break
		}
		lineStart := w.Position()
		w.Skip(c.blockIndent)
		if !marker.at(w) && !w.AtSpace() {
			w.StartFrom(lineStart)
			break
		}
	}
	return w.Sub(start, w.Position())
}

// emitList splits the list region into items at marker lines sitting at the
// block indent. A selector on the first line belongs to the list itself.
func (c *Compiler) emitList(w *cursor.Cursor, marker listMarker) {
	src := c.blockSrc
	sel := stripSelector(w)

	c.out.Append("<", marker.tag)
	c.emitAttributes(sel, src)
	c.out.Append(">")
	c.record(marker.kind, src)

	marker.skip(w)
	itemStart := w.Position()
	for w.HasCurrent() {
		w.ScrollToEOL().SkipBlankLines()
		if !w.AtSpaces(c.blockIndent) {
			continue
		}
		w.Skip(c.blockIndent)
		if !marker.at(w) {
			continue
		}
		c.emitItem(w.Sub(itemStart, w.Position()))
		marker.skip(w)
		itemStart = w.Position()
	}
	c.emitItem(w.Sub(itemStart, w.Position()))

	c.out.Append("</", marker.tag, ">\n")
}

// emitItem writes one list item. An item whose body has an interior blank
// line is loose and compiled as nested blocks; otherwise it is a single
// inline run.
func (c *Compiler) emitItem(w *cursor.Cursor) {
	src := w.AbsoluteIndex(w.Position())
	sel := stripSelector(w)

	c.out.Append("<li")
	c.emitAttributes(sel, src)
	c.out.Append(">")
	c.record(KindListItem, src)

	loose := cursor.Lookahead(w, func(l *cursor.Cursor) bool {
		return l.ScrollToTerm().SkipWhitespaces().HasCurrent()
	})
	if loose {
		indent := c.blockIndent
		c.ProcessBlocks(w)
		c.blockIndent = indent
	} else {
		c.inline.ProcessInlines(w)
	}

	c.out.Append("</li>")
}
