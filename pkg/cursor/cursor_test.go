package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blockmark/pkg/cursor"
)

func TestCursor_Predicates(t *testing.T) {
	t.Parallel()

	assert.True(t, cursor.New("# Title").At("# "))
	assert.False(t, cursor.New("#").At("##"))
	assert.True(t, cursor.New("<DIV>").AtInsensitive("<div"))
	assert.True(t, cursor.New("\r\nx").AtNewLine())
	assert.True(t, cursor.New("\tx").AtSpace())
	assert.True(t, cursor.New("   x").AtSpaces(3))
	assert.False(t, cursor.New("   x").AtSpaces(4))
	assert.True(t, cursor.New("1.").AtDigit())
	assert.True(t, cursor.New("a-b").AtIdentifier())
	assert.False(t, cursor.New("{").AtIdentifier())

	empty := cursor.New("")
	assert.False(t, empty.HasCurrent())
	assert.Equal(t, byte(0), empty.Current())
	assert.False(t, empty.AtSpace())
	assert.False(t, empty.AtIdentifier())
}

func TestCursor_Skips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		skip func(c *cursor.Cursor)
		want int
	}{
		{name: "skip past end", text: "ab", skip: func(c *cursor.Cursor) { c.Skip(5) }, want: 2},
		{name: "crlf", text: "\r\nx", skip: func(c *cursor.Cursor) { c.SkipNewLine() }, want: 2},
		{name: "no newline", text: "x", skip: func(c *cursor.Cursor) { c.SkipNewLine() }, want: 0},
		{name: "spaces stop at text", text: " \tx\n", skip: func(c *cursor.Cursor) { c.SkipSpaces() }, want: 2},
		{name: "digits", text: "123. a", skip: func(c *cursor.Cursor) { c.SkipDigits() }, want: 3},
		{name: "whitespaces", text: " \n\tx", skip: func(c *cursor.Cursor) { c.SkipWhitespaces() }, want: 3},
		{
			name: "blank lines keep indentation",
			text: "  \n\n  x",
			skip: func(c *cursor.Cursor) { c.SkipBlankLines() },
			want: 4,
		},
		{
			name: "leading spaces of first line kept",
			text: "  x",
			skip: func(c *cursor.Cursor) { c.SkipBlankLines() },
			want: 0,
		},
		{name: "blank buffer", text: " \n ", skip: func(c *cursor.Cursor) { c.SkipBlankLines() }, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cursor.New(tt.text)
			tt.skip(c)
			assert.Equal(t, tt.want, c.Position())
		})
	}
}

func TestCursor_Scrolls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		scroll func(c *cursor.Cursor)
		want   int
	}{
		{name: "to eol", text: "ab\ncd", scroll: func(c *cursor.Cursor) { c.ScrollToEOL() }, want: 2},
		{name: "to term", text: "a\nb\n\nc", scroll: func(c *cursor.Cursor) { c.ScrollToTerm() }, want: 3},
		{
			name:   "whitespace-only line terminates",
			text:   "a\n  \nb",
			scroll: func(c *cursor.Cursor) { c.ScrollToTerm() },
			want:   1,
		},
		{name: "term at end", text: "abc", scroll: func(c *cursor.Cursor) { c.ScrollToTerm() }, want: 3},
		{name: "to literal", text: "a{b}c", scroll: func(c *cursor.Cursor) { c.ScrollTo("}") }, want: 3},
		{name: "missing literal", text: "abc", scroll: func(c *cursor.Cursor) { c.ScrollTo("}") }, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cursor.New(tt.text)
			tt.scroll(c)
			assert.Equal(t, tt.want, c.Position())
		})
	}
}

func TestCursor_IndexOf(t *testing.T) {
	t.Parallel()

	at, ok := cursor.New("a-->b-->").IndexOf("-->")
	require.True(t, ok)
	assert.Equal(t, 1, at)

	_, ok = cursor.New("abc").IndexOf("z")
	assert.False(t, ok)

	c := cursor.New("x}y}").Exclude(1, 2)
	at, ok = c.IndexOf("}")
	require.True(t, ok)
	assert.Equal(t, 3, at, "occurrences inside excluded ranges are ignored")
}

func TestCursor_Exclude(t *testing.T) {
	t.Parallel()

	c := cursor.New("Title {#a}\n").Exclude(5, 10)
	assert.Equal(t, "Title\n", c.String())
	assert.Equal(t, "Title\n", c.Substring(0, 11))

	c = cursor.New("ab{x}cd").Exclude(2, 5)
	c.Skip(2)
	assert.Equal(t, 5, c.Position(), "skip jumps over the excluded range")
	assert.Equal(t, byte('c'), c.Current())
	assert.True(t, c.StartFrom(1).At("bc"), "matching reads across the excluded range")

	assert.Equal(t, 3, cursor.New("abcd").Exclude(1, 3).StartFrom(2).Position())

	ordered := cursor.New("abcdefgh").Exclude(5, 6).Exclude(1, 2).Exclude(3, 3)
	assert.Equal(t, []cursor.Range{{Start: 1, End: 2}, {Start: 5, End: 6}}, ordered.Excluded())
}

func TestCursor_StartFromClamps(t *testing.T) {
	t.Parallel()

	c := cursor.New("abc")
	assert.Equal(t, 3, c.StartFrom(10).Position())
	assert.Equal(t, 0, c.StartFrom(-1).Position())
	assert.Equal(t, 0, c.Start())
	assert.Equal(t, 3, c.End())
}

func TestCursor_Sub(t *testing.T) {
	t.Parallel()

	parent := cursor.New("0123456789").Exclude(4, 6)
	sub := parent.Sub(2, 8)

	assert.Equal(t, 2, sub.Position())
	assert.Equal(t, 2, sub.Start())
	assert.Equal(t, 8, sub.End())
	assert.Equal(t, "2367", sub.String())

	wide := parent.Sub(-5, 100)
	assert.Equal(t, 0, wide.Start())
	assert.Equal(t, 10, wide.End())

	nested := cursor.NewAt("abc", 100).Sub(1, 3)
	assert.Equal(t, 101, nested.AbsoluteIndex(1))
}

func TestCursor_YieldUntil(t *testing.T) {
	t.Parallel()

	c := cursor.New("hello world")
	assert.Equal(t, "hello", c.YieldUntil(5))
	assert.Equal(t, 5, c.Position())
}

func TestLookahead(t *testing.T) {
	t.Parallel()

	c := cursor.New("abc")

	got := cursor.Lookahead(c, func(w *cursor.Cursor) int {
		w.Skip(2)
		w.Exclude(0, 1)
		return w.Position()
	})

	assert.Equal(t, 2, got)
	assert.Equal(t, 0, c.Position())
	assert.Empty(t, c.Excluded())
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	r := cursor.Range{Start: 2, End: 4}
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(4))
}
