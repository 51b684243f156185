// Package block implements the block-level grammar of blockmark documents.
//
// The block compiler walks a document coarsely, looking for the markers that
// open each block, and hands the text inside blocks to the inline compiler.
// Recognizers follow a fail-fast convention:
//   - tryXXX methods return false and leave the cursor at its entry offset
//     when their block does not start at the current position;
//   - emitXXX methods write output and advance the cursor.
//
// Nested regions (list items, divs) are parsed by calling EmitBlock on a
// sub-cursor, so the same entry point serves the top level and every nested
// level.
package block

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/cursor"
	"github.com/yaklabco/blockmark/pkg/fragment"
	"github.com/yaklabco/blockmark/pkg/htmlpretty"
	"github.com/yaklabco/blockmark/pkg/inline"
)

// Compiler compiles blocks into a fragment buffer. A Compiler serves a single
// document and must not be shared between goroutines.
type Compiler struct {
	opts   config.Options
	out    *fragment.Buffer
	inline *inline.Compiler
	logger *log.Logger

	// blockIndent is the number of leading spaces on the first line of the
	// block being compiled. Recursive calls overwrite it; callers restore it.
	blockIndent int

	// blockSrc is the document offset of the block being compiled.
	blockSrc int

	stats Stats
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger logs recognized blocks at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates a compiler for one document.
func New(opts config.Options, options ...Option) *Compiler {
	out := fragment.New()
	c := &Compiler{
		opts:   opts,
		out:    out,
		inline: inline.New(out, opts.Inline),
		stats:  make(Stats),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Compile converts text to HTML in one synchronous pass.
func Compile(text string, opts config.Options, options ...Option) string {
	c := New(opts, options...)
	c.ProcessBlocks(cursor.New(text))
	return c.String()
}

// ProcessBlocks emits blocks until w is exhausted.
func (c *Compiler) ProcessBlocks(w *cursor.Cursor) {
	for w.HasCurrent() {
		c.EmitBlock(w)
	}
}

// EmitBlock consumes exactly one block starting at the current position of w.
// Recognizers are tried in fixed priority order; the paragraph is the
// fallback and never fails.
func (c *Compiler) EmitBlock(w *cursor.Cursor) {
	w.SkipBlankLines()
	c.blockSrc = w.AbsoluteIndex(w.Position())
	c.countBlockIndent(w)

	recognizers := []func(*cursor.Cursor) bool{
		c.tryUnorderedList,
		c.tryOrderedList,
		c.tryHeading,
		c.tryCodeBlock,
		c.tryDiv,
		c.tryHTML,
		c.tryHorizontalRuleOrTable,
	}
	for _, try := range recognizers {
		if try(w) {
			return
		}
	}
	c.emitParagraph(w)
}

// String returns the compiled HTML, pretty-printed when enabled.
func (c *Compiler) String() string {
	html := c.out.String()
	if c.opts.Pretty {
		html = htmlpretty.Format(html) + "\n"
	}
	return html
}

// Stats returns a copy of the per-kind block counts.
func (c *Compiler) Stats() Stats {
	stats := make(Stats, len(c.stats))
	stats.Add(c.stats)
	return stats
}

// countBlockIndent consumes the leading spaces of the block's first line.
func (c *Compiler) countBlockIndent(w *cursor.Cursor) {
	c.blockIndent = 0
	for w.At(" ") {
		c.blockIndent++
		w.Skip(1)
	}
}

// skipBlockIndent skips the block indent at the start of a line, if present.
func (c *Compiler) skipBlockIndent(w *cursor.Cursor) {
	if w.AtSpaces(c.blockIndent) {
		w.Skip(c.blockIndent)
	}
}

// emitAttributes writes the selector attributes and, when enabled, the
// source offset of the element.
func (c *Compiler) emitAttributes(sel Selector, src int) {
	sel.emit(c.out)
	if c.opts.SourceIndices {
		c.out.Append(` data-src="`, strconv.Itoa(src), `"`)
	}
}

func (c *Compiler) record(kind Kind, src int) {
	c.stats[kind]++
	if c.logger != nil {
		c.logger.Debug("block", "kind", kind.String(), "offset", src, "indent", c.blockIndent)
	}
}

// emitParagraph consumes everything up to the next blank line.
func (c *Compiler) emitParagraph(w *cursor.Cursor) {
	w.SkipWhitespaces()
	if !w.HasCurrent() {
		return
	}

	start := w.Position()
	w.ScrollToTerm()
	p := w.Sub(start, w.Position())
	sel := stripSelector(p)

	c.out.Append("<p")
	c.emitAttributes(sel, c.blockSrc)
	c.out.Append(">")
	c.inline.ProcessInlines(p)
	c.out.Append("</p>\n")
	c.record(KindParagraph, c.blockSrc)
}

// tryHeading matches a run of '#' followed by a space. The number of pounds
// is the heading level.
func (c *Compiler) tryHeading(w *cursor.Cursor) bool {
	if !w.At("#") {
		return false
	}
	start := w.Position()
	level := 0
	for w.At("#") {
		w.Skip(1)
		level++
	}
	if !w.At(" ") {
		w.StartFrom(start)
		return false
	}

	w.Skip(1)
	contentStart := w.Position()
	w.ScrollToTerm()
	h := w.Sub(contentStart, w.Position())
	sel := stripSelector(h)

	tag := "h" + strconv.Itoa(level)
	c.out.Append("<", tag)
	c.emitAttributes(sel, c.blockSrc)
	c.out.Append(">")
	c.inline.ProcessInlines(h)
	c.out.Append("</", tag, ">")
	c.record(KindHeading, c.blockSrc)
	return true
}
