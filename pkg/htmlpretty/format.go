// Package htmlpretty re-indents HTML fragments for reading.
//
// Block-level elements start on their own line, indented two spaces per
// nesting level. Inline markup and text stay on the line of the element that
// contains them, and the content of <pre> elements is copied untouched.
// Tokens are written back in their raw form, so attributes and character
// references are never rewritten.
package htmlpretty

import (
	"strings"

	"golang.org/x/net/html"
)

const indentUnit = "  "

//nolint:gochecknoglobals // Read-only lookup table.
var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "body": {},
	"canvas": {}, "dd": {}, "div": {}, "dl": {}, "dt": {}, "fieldset": {},
	"figcaption": {}, "figure": {}, "footer": {}, "form": {}, "h1": {},
	"h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "head": {},
	"header": {}, "hgroup": {}, "hr": {}, "html": {}, "li": {}, "main": {},
	"nav": {}, "noscript": {}, "ol": {}, "output": {}, "p": {}, "pre": {},
	"section": {}, "table": {}, "tbody": {}, "td": {}, "tfoot": {}, "th": {},
	"thead": {}, "tr": {}, "ul": {},
}

// IsBlockElement reports whether name is laid out on its own line.
func IsBlockElement(name string) bool {
	_, ok := blockElements[name]
	return ok
}

// Format returns text with block-level elements re-indented. The result has
// no trailing newline.
func Format(text string) string {
	var p printer
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			p.startTag(string(name), raw)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.endTag(string(name), raw)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			p.voidTag(string(name), raw)
		case html.TextToken:
			p.text(raw)
		case html.CommentToken, html.DoctypeToken:
			p.comment(raw)
		}
	}
	return strings.TrimRight(p.sb.String(), "\n")
}

type frame struct {
	name          string
	hasBlockChild bool
}

type printer struct {
	sb   strings.Builder
	open []frame

	// pre counts the <pre> elements enclosing the current token.
	pre int

	// afterOpen and afterClose record whether the last token written was a
	// block start tag or a block end tag.
	afterOpen  bool
	afterClose bool
}

func (p *printer) startTag(name, raw string) {
	if p.pre > 0 {
		if name == "pre" {
			p.pre++
		}
		p.sb.WriteString(raw)
		return
	}
	if !IsBlockElement(name) {
		p.inline(raw)
		return
	}
	if name == "hr" {
		p.voidTag(name, raw)
		return
	}

	p.markBlockChild()
	p.newline()
	p.sb.WriteString(raw)
	p.open = append(p.open, frame{name: name})
	p.afterOpen, p.afterClose = true, false
	if name == "pre" {
		p.pre = 1
	}
}

func (p *printer) endTag(name, raw string) {
	if p.pre > 0 {
		if name == "pre" {
			p.pre--
		}
		if p.pre > 0 || name != "pre" {
			p.sb.WriteString(raw)
			return
		}
	}
	if !IsBlockElement(name) {
		p.inline(raw)
		return
	}

	idx := -1
	for i := len(p.open) - 1; i >= 0; i-- {
		if p.open[i].name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.inline(raw)
		return
	}

	closed := p.open[idx]
	p.open = p.open[:idx]
	if closed.hasBlockChild {
		p.newline()
	}
	p.sb.WriteString(raw)
	p.afterOpen, p.afterClose = false, true
}

func (p *printer) voidTag(name, raw string) {
	if p.pre > 0 || !IsBlockElement(name) {
		p.inline(raw)
		return
	}
	p.markBlockChild()
	p.newline()
	p.sb.WriteString(raw)
	p.afterOpen, p.afterClose = false, true
}

func (p *printer) text(raw string) {
	if p.pre > 0 {
		p.sb.WriteString(raw)
		return
	}
	if strings.TrimSpace(raw) == "" {
		if !p.afterOpen && !p.afterClose && p.sb.Len() > 0 {
			p.sb.WriteString(raw)
		}
		return
	}
	if p.afterOpen || p.afterClose {
		raw = strings.TrimLeft(raw, " \t\r\n")
	}
	p.inline(raw)
}

func (p *printer) comment(raw string) {
	if p.pre > 0 {
		p.sb.WriteString(raw)
		return
	}
	if p.afterClose || len(p.open) == 0 {
		p.markBlockChild()
		p.newline()
		p.sb.WriteString(raw)
		p.afterOpen, p.afterClose = false, true
		return
	}
	p.inline(raw)
}

// inline writes raw on the current line, unless the last token closed a
// block, in which case a new line is started first.
func (p *printer) inline(raw string) {
	if p.afterClose {
		p.markBlockChild()
		p.newline()
	}
	p.sb.WriteString(raw)
	p.afterOpen, p.afterClose = false, false
}

func (p *printer) markBlockChild() {
	if len(p.open) > 0 {
		p.open[len(p.open)-1].hasBlockChild = true
	}
}

func (p *printer) newline() {
	if p.sb.Len() > 0 {
		p.sb.WriteByte('\n')
	}
	p.sb.WriteString(strings.Repeat(indentUnit, len(p.open)))
}
