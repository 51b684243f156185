package block

import (
	"github.com/yaklabco/blockmark/pkg/cursor"
	"github.com/yaklabco/blockmark/pkg/langdetect"
)

const (
	codeFence = "```"
	divFence  = "~~~"
)

// fencedRegion matches fence at the current position and returns the region
// up to the next occurrence of the same fence. Without a closing fence
// nothing is consumed. On success w is moved past the closing fence and any
// blank lines after it.
func fencedRegion(w *cursor.Cursor, fence string) (*cursor.Cursor, bool) {
	if !w.At(fence) {
		return nil, false
	}
	start := w.Position()
	w.Skip(len(fence))
	bodyStart := w.Position()

	end, ok := w.IndexOf(fence)
	if !ok {
		w.StartFrom(start)
		return nil, false
	}

	body := w.Sub(bodyStart, end)
	w.StartFrom(end).Skip(len(fence)).SkipBlankLines()
	return body, true
}

// tryCodeBlock matches a ``` fenced code block.
func (c *Compiler) tryCodeBlock(w *cursor.Cursor) bool {
	body, ok := fencedRegion(w, codeFence)
	if !ok {
		return false
	}
	sel := stripSelector(body)

	c.out.Append("<pre")
	c.emitAttributes(sel, c.blockSrc)
	c.out.Append("><code")
	if c.opts.DetectLanguage {
		if class := langdetect.Class([]byte(body.String())); class != "" {
			c.out.Append(` class="`, class, `"`)
		}
	}
	c.out.Append(">")
	c.emitCode(body)
	c.out.Append("</code></pre>")
	c.record(KindCodeBlock, c.blockSrc)
	return true
}

// emitCode writes code line by line with the block indent stripped. Line
// breaks are written only between lines, never after the last one.
func (c *Compiler) emitCode(w *cursor.Cursor) {
	w.SkipBlankLines()
	c.skipBlockIndent(w)
	for w.HasCurrent() {
		if !w.AtNewLine() {
			c.inline.EmitCode(w)
			continue
		}
		w.SkipNewLine()
		c.skipBlockIndent(w)
		if w.HasCurrent() {
			c.out.Append("\n")
		}
	}
}

// tryDiv matches a ~~~ fenced div. Its interior is compiled as a nested
// sequence of blocks.
func (c *Compiler) tryDiv(w *cursor.Cursor) bool {
	body, ok := fencedRegion(w, divFence)
	if !ok {
		return false
	}
	src := c.blockSrc
	sel := stripSelector(body)

	c.out.Append("<div")
	c.emitAttributes(sel, src)
	c.out.Append(">")
	c.record(KindDiv, src)

	indent := c.blockIndent
	c.ProcessBlocks(body)
	c.blockIndent = indent

	c.out.Append("</div>\n")
	return true
}
