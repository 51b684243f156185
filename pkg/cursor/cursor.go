// Package cursor provides a bounded, backtrackable view over document text.
//
// A Cursor never copies the text it walks. Nested regions are expressed as
// sub-cursors sharing the same buffer, so every offset a cursor reports is an
// offset into the original document. Regions can be hidden from parsing with
// Exclude without physically removing them.
package cursor

import "strings"

// Range is a half-open byte range [Start, End) of the underlying buffer.
type Range struct {
	Start int
	End   int
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Cursor is a read position bounded to [start, end) of a shared text buffer.
type Cursor struct {
	src      string
	pos      int
	start    int
	end      int
	origin   int
	excluded []Range
}

// New creates a cursor over the whole text.
func New(text string) *Cursor {
	return NewAt(text, 0)
}

// NewAt creates a cursor over text that was taken from a larger document at
// origin. AbsoluteIndex maps offsets back to that document.
func NewAt(text string, origin int) *Cursor {
	return &Cursor{src: text, end: len(text), origin: origin}
}

// Sub creates a sub-cursor over [start, end) of the same buffer, positioned at
// start. Bounds are clamped to the parent's bounds. Exclusions overlapping the
// range are inherited.
func (c *Cursor) Sub(start, end int) *Cursor {
	start = clamp(start, c.start, c.end)
	end = clamp(end, start, c.end)

	sub := &Cursor{src: c.src, pos: start, start: start, end: end, origin: c.origin}
	for _, r := range c.excluded {
		if r.End > start && r.Start < end {
			sub.excluded = append(sub.excluded, r)
		}
	}
	sub.normalize()
	return sub
}

// Clone returns an independent copy of the cursor.
func (c *Cursor) Clone() *Cursor {
	clone := *c
	if c.excluded != nil {
		clone.excluded = make([]Range, len(c.excluded))
		copy(clone.excluded, c.excluded)
	}
	return &clone
}

// Position returns the current buffer offset.
func (c *Cursor) Position() int { return c.pos }

// Start returns the lower bound.
func (c *Cursor) Start() int { return c.start }

// End returns the upper bound (exclusive).
func (c *Cursor) End() int { return c.end }

// AbsoluteIndex maps a buffer offset to an offset in the original document.
func (c *Cursor) AbsoluteIndex(offset int) int {
	return c.origin + offset
}

// HasCurrent reports whether there is a character at the current position.
func (c *Cursor) HasCurrent() bool {
	return c.pos < c.end
}

// Current returns the byte at the current position, or 0 when exhausted.
func (c *Cursor) Current() byte {
	if !c.HasCurrent() {
		return 0
	}
	return c.src[c.pos]
}

// At reports whether the text at the current position starts with lit.
// Excluded ranges are transparently skipped while matching.
func (c *Cursor) At(lit string) bool {
	return c.match(lit, false)
}

// AtInsensitive is At with ASCII case folding.
func (c *Cursor) AtInsensitive(lit string) bool {
	return c.match(lit, true)
}

// AtNewLine reports whether the cursor is at "\n" or "\r\n".
func (c *Cursor) AtNewLine() bool {
	return c.At("\n") || c.At("\r\n")
}

// AtSpace reports whether the cursor is at a space or a tab.
func (c *Cursor) AtSpace() bool {
	ch := c.Current()
	return c.HasCurrent() && (ch == ' ' || ch == '\t')
}

// AtSpaces reports whether the next n characters are all spaces.
func (c *Cursor) AtSpaces(n int) bool {
	i := c.pos
	for k := 0; k < n; k++ {
		if i >= c.end || c.src[i] != ' ' {
			return false
		}
		i = c.next(i)
	}
	return true
}

// AtDigit reports whether the cursor is at an ASCII digit.
func (c *Cursor) AtDigit() bool {
	ch := c.Current()
	return c.HasCurrent() && ch >= '0' && ch <= '9'
}

// AtIdentifier reports whether the cursor is at a character allowed in
// selector identifiers: letters, digits, '-' and '_'.
func (c *Cursor) AtIdentifier() bool {
	if !c.HasCurrent() {
		return false
	}
	return IsIdentifierChar(c.Current())
}

// IsIdentifierChar reports whether ch may appear in an identifier.
func IsIdentifierChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '-' || ch == '_'
}

// Skip advances n characters, jumping over excluded ranges.
func (c *Cursor) Skip(n int) *Cursor {
	for k := 0; k < n && c.pos < c.end; k++ {
		c.pos = c.next(c.pos)
	}
	return c
}

// SkipNewLine skips a single "\n" or "\r\n" if the cursor is at one.
func (c *Cursor) SkipNewLine() *Cursor {
	switch {
	case c.At("\r\n"):
		c.Skip(2)
	case c.At("\n"):
		c.Skip(1)
	}
	return c
}

// SkipSpaces skips spaces and tabs, stopping at newlines.
func (c *Cursor) SkipSpaces() *Cursor {
	for c.AtSpace() {
		c.Skip(1)
	}
	return c
}

// SkipDigits skips a run of ASCII digits.
func (c *Cursor) SkipDigits() *Cursor {
	for c.AtDigit() {
		c.Skip(1)
	}
	return c
}

// SkipWhitespaces skips spaces, tabs and line breaks.
func (c *Cursor) SkipWhitespaces() *Cursor {
	for c.HasCurrent() && isWhitespace(c.Current()) {
		c.Skip(1)
	}
	return c
}

// SkipBlankLines skips whitespace-only lines. The cursor ends up at the
// beginning of the next non-blank line, so its indentation is preserved.
// Whitespace before the first line break is only skipped when the rest of the
// buffer is blank.
func (c *Cursor) SkipBlankLines() *Cursor {
	last := c.pos
	i := c.pos
	for i < c.end {
		ch := c.src[i]
		if ch == '\n' {
			last = c.next(i)
		} else if !isWhitespace(ch) {
			c.pos = last
			return c
		}
		i = c.next(i)
	}
	c.pos = c.end
	return c
}

// ScrollToEOL moves to the line break ending the current line, or to the end.
func (c *Cursor) ScrollToEOL() *Cursor {
	for c.HasCurrent() && !c.AtNewLine() {
		c.Skip(1)
	}
	return c
}

// ScrollToTerm moves to the line break that precedes the next blank line,
// or to the end of the bounds. It is the universal block terminator.
func (c *Cursor) ScrollToTerm() *Cursor {
	for c.HasCurrent() {
		if c.AtNewLine() && c.blankLineFollows() {
			return c
		}
		c.Skip(1)
	}
	return c
}

// ScrollTo moves to the next occurrence of lit, or to the end.
func (c *Cursor) ScrollTo(lit string) *Cursor {
	for c.HasCurrent() && !c.At(lit) {
		c.Skip(1)
	}
	return c
}

// IndexOf returns the buffer offset of the next occurrence of lit at or after
// the current position. Occurrences starting inside excluded ranges are ignored.
func (c *Cursor) IndexOf(lit string) (int, bool) {
	from := c.pos
	for from < c.end {
		idx := strings.Index(c.src[from:c.end], lit)
		if idx < 0 {
			return 0, false
		}
		at := from + idx
		if !c.isExcluded(at) {
			return at, true
		}
		from = at + 1
	}
	return 0, false
}

// Substring returns the text between buffer offsets a and b with excluded
// ranges removed. Offsets are clamped to the bounds.
func (c *Cursor) Substring(a, b int) string {
	a = clamp(a, c.start, c.end)
	b = clamp(b, a, c.end)
	if len(c.excluded) == 0 {
		return c.src[a:b]
	}

	var sb strings.Builder
	i := a
	for _, r := range c.excluded {
		if r.End <= i || r.Start >= b {
			continue
		}
		if r.Start > i {
			sb.WriteString(c.src[i:r.Start])
		}
		i = max(i, r.End)
	}
	if i < b {
		sb.WriteString(c.src[i:b])
	}
	return sb.String()
}

// YieldUntil returns the text from the current position to end and moves there.
func (c *Cursor) YieldUntil(end int) string {
	s := c.Substring(c.pos, end)
	c.StartFrom(end)
	return s
}

// String returns the bounded text with excluded ranges removed.
func (c *Cursor) String() string {
	return c.Substring(c.start, c.end)
}

// StartFrom resets the position to offset. Bounds are never altered.
func (c *Cursor) StartFrom(offset int) *Cursor {
	c.pos = clamp(offset, c.start, c.end)
	c.normalize()
	return c
}

// Exclude hides [s, e) from subsequent reads and skips.
func (c *Cursor) Exclude(s, e int) *Cursor {
	s = clamp(s, c.start, c.end)
	e = clamp(e, s, c.end)
	if s == e {
		return c
	}

	idx := len(c.excluded)
	for i, r := range c.excluded {
		if s < r.Start {
			idx = i
			break
		}
	}
	c.excluded = append(c.excluded, Range{})
	copy(c.excluded[idx+1:], c.excluded[idx:])
	c.excluded[idx] = Range{Start: s, End: e}
	c.normalize()
	return c
}

// Excluded returns the excluded ranges in buffer order.
func (c *Cursor) Excluded() []Range {
	return c.excluded
}

// Lookahead runs fn against a disposable clone of c and returns its result.
// The original cursor is unaffected regardless of what fn does.
func Lookahead[T any](c *Cursor, fn func(w *Cursor) T) T {
	return fn(c.Clone())
}

func (c *Cursor) match(lit string, fold bool) bool {
	if len(c.excluded) == 0 {
		if c.end-c.pos < len(lit) {
			return false
		}
		if fold {
			return strings.EqualFold(c.src[c.pos:c.pos+len(lit)], lit)
		}
		return c.src[c.pos:c.pos+len(lit)] == lit
	}

	i := c.pos
	for k := 0; k < len(lit); k++ {
		if i >= c.end {
			return false
		}
		a, b := c.src[i], lit[k]
		if fold {
			a, b = lower(a), lower(b)
		}
		if a != b {
			return false
		}
		i = c.next(i)
	}
	return true
}

// blankLineFollows reports whether the line after the line break at the
// current position is whitespace-only (or absent).
func (c *Cursor) blankLineFollows() bool {
	return Lookahead(c, func(w *Cursor) bool {
		w.SkipNewLine().SkipSpaces()
		return !w.HasCurrent() || w.AtNewLine()
	})
}

// next returns the offset following i, skipping excluded ranges.
func (c *Cursor) next(i int) int {
	i++
	for _, r := range c.excluded {
		if r.Contains(i) {
			i = r.End
		}
	}
	return min(i, c.end)
}

func (c *Cursor) normalize() {
	for _, r := range c.excluded {
		if r.Contains(c.pos) {
			c.pos = min(r.End, c.end)
		}
	}
}

func (c *Cursor) isExcluded(offset int) bool {
	for _, r := range c.excluded {
		if r.Contains(offset) {
			return true
		}
	}
	return false
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func lower(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch + 'a' - 'A'
	}
	return ch
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
