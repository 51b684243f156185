// Package inline compiles inline spans (emphasis, code spans, links, escapes)
// inside a block region into HTML.
//
// The inline compiler writes into the fragment buffer it shares with the block
// compiler and consumes every cursor it is handed.
//
// Methods follow the same convention as the block compiler:
//   - tryXXX methods are fail-fast: they return false without moving the
//     cursor if the span does not start at the current position;
//   - emitXXX methods write output and advance the cursor.
package inline

import (
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/cursor"
	"github.com/yaklabco/blockmark/pkg/fragment"
)

// Compiler is the inline compiler.
type Compiler struct {
	out     *fragment.Buffer
	opts    config.InlineOptions
	pending []byte
}

// New creates an inline compiler writing into out.
func New(out *fragment.Buffer, opts config.InlineOptions) *Compiler {
	return &Compiler{out: out, opts: opts}
}

// ProcessInlines compiles the whole remaining region of w with the full inline
// grammar. Leading and trailing whitespace is not emitted.
func (c *Compiler) ProcessInlines(w *cursor.Cursor) {
	w.SkipWhitespaces()
	end := contentEnd(w)
	c.processRange(w.Sub(w.Position(), end))
	w.StartFrom(w.End())
	c.flush()
}

// EmitCode writes the rest of the current line of w as escaped code text.
// The line break itself is left for the caller.
func (c *Compiler) EmitCode(w *cursor.Cursor) {
	for w.HasCurrent() && !w.AtNewLine() {
		c.writeEscaped(w.Current())
		w.Skip(1)
	}
	c.flush()
}

// EmitPlain passes the rest of w through verbatim. Only ampersands that do not
// start an entity are escaped.
func (c *Compiler) EmitPlain(w *cursor.Cursor) {
	for w.HasCurrent() {
		if w.At("&") {
			if !c.tryEntity(w) {
				c.writeString("&amp;")
				w.Skip(1)
			}
			continue
		}
		c.pending = append(c.pending, w.Current())
		w.Skip(1)
	}
	c.flush()
}

// processRange compiles every span of w.
func (c *Compiler) processRange(w *cursor.Cursor) {
	for w.HasCurrent() {
		c.emitNext(w)
	}
}

func (c *Compiler) emitNext(w *cursor.Cursor) {
	switch w.Current() {
	case '\\':
		if c.tryBackslashEscape(w) {
			return
		}
	case '`':
		c.emitCodeSpan(w)
		return
	case '*':
		if c.tryEmphasis(w, "**", "strong") || c.tryEmphasis(w, "*", "em") {
			return
		}
	case '~':
		if c.tryEmphasis(w, "~~", "del") {
			return
		}
	case '!':
		if c.tryImage(w) {
			return
		}
	case '[':
		if c.tryLink(w) {
			return
		}
	case '<':
		if c.tryAutolink(w) || c.tryInlineHTML(w) {
			return
		}
	case '&':
		if c.tryEntity(w) {
			return
		}
	case '\r', '\n':
		if w.AtNewLine() {
			c.emitNewLine(w)
			return
		}
	case '-', '.', '(':
		if c.opts.Typographics && c.tryTypographics(w) {
			return
		}
	}
	c.writeEscaped(w.Current())
	w.Skip(1)
}

func (c *Compiler) tryBackslashEscape(w *cursor.Cursor) bool {
	next := cursor.Lookahead(w, func(l *cursor.Cursor) byte {
		l.Skip(1)
		if !l.HasCurrent() {
			return 0
		}
		return l.Current()
	})
	if next == 0 || !util.IsPunct(next) {
		return false
	}
	w.Skip(2)
	c.writeEscaped(next)
	return true
}

// emitCodeSpan emits a backtick-delimited code span. A run without a closing
// run of equal length is emitted literally.
func (c *Compiler) emitCodeSpan(w *cursor.Cursor) {
	start := w.Position()
	ticks := countRun(w, '`')
	contentStart := w.Position()

	closeAt := cursor.Lookahead(w, func(l *cursor.Cursor) int {
		for l.HasCurrent() {
			if l.Current() != '`' {
				l.Skip(1)
				continue
			}
			at := l.Position()
			if countRun(l, '`') == ticks {
				return at
			}
		}
		return -1
	})
	if closeAt < 0 {
		c.writeString(w.Substring(start, contentStart))
		return
	}

	code := w.Sub(contentStart, closeAt)
	c.writeString("<code>")
	code.SkipSpaces()
	mark := len(c.pending)
	for code.HasCurrent() {
		if code.AtNewLine() {
			code.SkipNewLine()
			c.pending = append(c.pending, ' ')
			continue
		}
		c.writeEscaped(code.Current())
		code.Skip(1)
	}
	for len(c.pending) > mark && c.pending[len(c.pending)-1] == ' ' {
		c.pending = c.pending[:len(c.pending)-1]
	}
	c.writeString("</code>")
	w.StartFrom(closeAt).Skip(ticks)
}

// tryEmphasis matches marker-delimited spans such as *em*, **strong** and
// ~~del~~. The opening marker must not be followed by whitespace and the
// closing marker must not be preceded by it.
func (c *Compiler) tryEmphasis(w *cursor.Cursor, marker, tag string) bool {
	if !w.At(marker) {
		return false
	}
	start := w.Position()
	w.Skip(len(marker))
	if !w.HasCurrent() || isSpace(w.Current()) || (len(marker) == 1 && w.At(marker)) {
		w.StartFrom(start)
		return false
	}

	contentStart := w.Position()
	closeAt, ok := findClosing(w, marker)
	if !ok {
		w.StartFrom(start)
		return false
	}

	c.writeString("<" + tag + ">")
	c.processRange(w.Sub(contentStart, closeAt))
	c.writeString("</" + tag + ">")
	w.StartFrom(closeAt).Skip(len(marker))
	return true
}

// tryLink matches [text](url "title").
func (c *Compiler) tryLink(w *cursor.Cursor) bool {
	start := w.Position()
	text, dest, title, ok := scanLinkParts(w)
	if !ok {
		w.StartFrom(start)
		return false
	}

	c.writeString(`<a href="`)
	c.writeString(escapeURL(dest))
	c.writeString(`"`)
	if title != "" {
		c.writeString(` title="`)
		c.writeString(string(util.EscapeHTML([]byte(title))))
		c.writeString(`"`)
	}
	c.writeString(">")
	c.processRange(text)
	c.writeString("</a>")
	return true
}

// tryImage matches ![alt](src "title").
func (c *Compiler) tryImage(w *cursor.Cursor) bool {
	if !w.At("![") {
		return false
	}
	start := w.Position()
	w.Skip(1)
	alt, src, title, ok := scanLinkParts(w)
	if !ok {
		w.StartFrom(start)
		return false
	}

	c.writeString(`<img src="`)
	c.writeString(escapeURL(src))
	c.writeString(`" alt="`)
	c.writeString(string(util.EscapeHTML([]byte(alt.String()))))
	c.writeString(`"`)
	if title != "" {
		c.writeString(` title="`)
		c.writeString(string(util.EscapeHTML([]byte(title))))
		c.writeString(`"`)
	}
	c.writeString("/>")
	return true
}

// tryAutolink matches <scheme:address> for http, https and mailto.
func (c *Compiler) tryAutolink(w *cursor.Cursor) bool {
	if !w.At("<http://") && !w.At("<https://") && !w.At("<mailto:") {
		return false
	}
	start := w.Position()
	w.Skip(1)
	urlStart := w.Position()
	for w.HasCurrent() && !w.At(">") && !isSpace(w.Current()) && !w.AtNewLine() {
		w.Skip(1)
	}
	if !w.At(">") {
		w.StartFrom(start)
		return false
	}

	url := w.Substring(urlStart, w.Position())
	w.Skip(1)
	c.writeString(`<a href="`)
	c.writeString(escapeURL(url))
	c.writeString(`">`)
	c.writeString(string(util.EscapeHTML([]byte(url))))
	c.writeString("</a>")
	return true
}

// tryInlineHTML passes an inline tag or comment through untouched.
func (c *Compiler) tryInlineHTML(w *cursor.Cursor) bool {
	start := w.Position()
	isTag := cursor.Lookahead(w, func(l *cursor.Cursor) bool {
		l.Skip(1)
		if l.At("/") {
			l.Skip(1)
		}
		return l.At("!--") || isLetter(l.Current())
	})
	if !isTag {
		return false
	}

	closer := ">"
	if w.At("<!--") {
		closer = "-->"
	}
	end, ok := w.IndexOf(closer)
	if !ok {
		return false
	}
	c.writeString(w.Substring(start, end+len(closer)))
	w.StartFrom(end + len(closer))
	return true
}

// tryEntity passes named and numeric character references through.
func (c *Compiler) tryEntity(w *cursor.Cursor) bool {
	length := cursor.Lookahead(w, func(l *cursor.Cursor) int {
		start := l.Position()
		l.Skip(1)
		if l.At("#") {
			l.Skip(1)
			if l.At("x") || l.At("X") {
				l.Skip(1)
			}
		}
		n := 0
		for l.HasCurrent() && isAlnum(l.Current()) {
			l.Skip(1)
			n++
		}
		if n == 0 || !l.At(";") {
			return 0
		}
		return l.Skip(1).Position() - start
	})
	if length == 0 {
		return false
	}
	start := w.Position()
	w.Skip(length)
	c.writeString(w.Substring(start, w.Position()))
	return true
}

func (c *Compiler) emitNewLine(w *cursor.Cursor) {
	w.SkipNewLine()
	c.trimPendingSpace()
	if c.opts.HardWraps {
		c.writeString("<br/>")
	}
	c.pending = append(c.pending, '\n')
}

func (c *Compiler) tryTypographics(w *cursor.Cursor) bool {
	for _, r := range typographicReplacements {
		if w.At(r.from) {
			w.Skip(len(r.from))
			c.writeString(r.to)
			return true
		}
	}
	return false
}

//nolint:gochecknoglobals // Read-only lookup table.
var typographicReplacements = []struct {
	from string
	to   string
}{
	{"--", "&mdash;"},
	{"...", "&hellip;"},
	{"(c)", "&copy;"},
	{"(C)", "&copy;"},
	{"(r)", "&reg;"},
	{"(R)", "&reg;"},
	{"(tm)", "&trade;"},
}

func (c *Compiler) writeEscaped(ch byte) {
	if v := util.EscapeHTMLByte(ch); v != nil {
		c.pending = append(c.pending, v...)
		return
	}
	c.pending = append(c.pending, ch)
}

func (c *Compiler) writeString(s string) {
	c.pending = append(c.pending, s...)
}

func (c *Compiler) trimPendingSpace() {
	for len(c.pending) > 0 && isSpace(c.pending[len(c.pending)-1]) {
		c.pending = c.pending[:len(c.pending)-1]
	}
}

func (c *Compiler) flush() {
	if len(c.pending) == 0 {
		return
	}
	c.out.Append(string(c.pending))
	c.pending = c.pending[:0]
}
