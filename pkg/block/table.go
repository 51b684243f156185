package block

import (
	"strings"

	"github.com/yaklabco/blockmark/pkg/cursor"
)

const ruleMarker = "---"

// Column alignments, as written into the style attribute of cells.
const (
	alignLeft   = "left"
	alignRight  = "right"
	alignCenter = "center"
)

// tryHorizontalRuleOrTable matches blocks opening with "---". A block whose
// whole content is the marker is a horizontal rule; anything else is a table.
func (c *Compiler) tryHorizontalRuleOrTable(w *cursor.Cursor) bool {
	if !w.At(ruleMarker) {
		return false
	}
	start := w.Position()
	w.ScrollToTerm()
	region := w.Sub(start, w.Position())
	sel := stripSelector(region)

	if strings.TrimSpace(region.String()) == ruleMarker {
		c.out.Append("<hr")
		c.emitAttributes(sel, c.blockSrc)
		c.out.Append("/>")
		c.record(KindHorizontalRule, c.blockSrc)
		return true
	}

	c.emitTable(region, sel)
	return true
}

// emitTable compiles a table region. The first row fixes the column count.
// When the second line is an alignment row, the first row becomes the header.
func (c *Compiler) emitTable(w *cursor.Cursor, sel Selector) {
	for w.At("-") {
		w.Skip(1)
	}
	wide := w.At(">")
	if wide {
		w.Skip(1)
	}

	c.out.Append("<table")
	c.emitAttributes(sel, c.blockSrc)
	if wide {
		c.out.Append(` width="100%"`)
	}
	c.out.Append(">")
	c.record(KindTable, c.blockSrc)

	first := readCells(w)
	cols := len(first)

	var aligns []string
	lineStart := w.Position()
	w.ScrollToEOL()
	line := w.Substring(lineStart, w.Position())
	hasHead := isSeparatorLine(line) && !isTableEnd(strings.TrimSpace(line))
	if hasHead {
		aligns = readAlignments(line)
	} else {
		w.StartFrom(lineStart)
	}

	if hasHead {
		c.out.Append("<thead>")
		c.emitRow("th", first, aligns)
		c.out.Append("</thead>")
	}

	c.out.Append("<tbody>")
	if !hasHead {
		c.emitRow("td", first, aligns)
	}
	for w.HasCurrent() {
		w.SkipWhitespaces()
		if !w.HasCurrent() {
			break
		}
		start := w.Position()
		w.ScrollToEOL()
		line := strings.TrimSpace(w.Substring(start, w.Position()))
		if isTableEnd(line) {
			break
		}
		c.emitRow("td", normalizeRow(readCells(cursor.New(line)), cols), aligns)
	}
	c.out.Append("</tbody></table>")
}

func (c *Compiler) emitRow(tag string, cells, aligns []string) {
	c.out.Append("<tr>")
	for i, cell := range cells {
		c.out.Append("<", tag)
		if i < len(aligns) && aligns[i] != "" {
			c.out.Append(` style="text-align:`, aligns[i], `"`)
		}
		c.out.Append(">")
		if cell != "" {
			c.inline.ProcessInlines(cursor.New(cell))
		}
		c.out.Append("</", tag, ">")
	}
	c.out.Append("</tr>")
}

// readCells splits the current line into pipe-delimited cells. A leading pipe
// is optional, "\|" does not delimit and an empty last cell is dropped. The
// cursor ends up past the line and any whitespace after it.
func readCells(w *cursor.Cursor) []string {
	var cells []string
	w.SkipWhitespaces()
	if w.At("|") {
		w.Skip(1)
	}

	cellStart := w.Position()
	for w.HasCurrent() && !w.AtNewLine() {
		switch {
		case w.At(`\|`):
			w.Skip(2)
		case w.At("|"):
			cells = append(cells, strings.TrimSpace(w.Substring(cellStart, w.Position())))
			cellStart = w.Skip(1).Position()
		default:
			w.Skip(1)
		}
	}
	if last := strings.TrimSpace(w.Substring(cellStart, w.Position())); last != "" {
		cells = append(cells, last)
	}

	w.SkipWhitespaces()
	return cells
}

// normalizeRow pads or truncates cells to cols.
func normalizeRow(cells []string, cols int) []string {
	if len(cells) > cols {
		return cells[:cols]
	}
	for len(cells) < cols {
		cells = append(cells, "")
	}
	return cells
}

// readAlignments parses an alignment row such as "|:--|:-:|--:|".
func readAlignments(line string) []string {
	separators := readCells(cursor.New(line))
	aligns := make([]string, len(separators))
	for i, sep := range separators {
		if sep == "" {
			continue
		}
		left := sep[0] == ':'
		right := sep[len(sep)-1] == ':'
		switch {
		case left && right:
			aligns[i] = alignCenter
		case left:
			aligns[i] = alignLeft
		case right:
			aligns[i] = alignRight
		}
	}
	return aligns
}

// isSeparatorLine reports whether line only holds alignment row characters.
func isSeparatorLine(line string) bool {
	if line == "" {
		return false
	}
	return strings.Trim(line, "- :|") == ""
}

// isTableEnd reports whether line is a run of three or more dashes.
func isTableEnd(line string) bool {
	return len(line) >= len(ruleMarker) && strings.Trim(line, "-") == ""
}
