// Package fragment provides the append-only output accumulator shared by the
// block and inline compilers.
package fragment

import "strings"

// Buffer is an ordered sequence of text fragments. Fragments are never
// modified once appended; String concatenates them in order.
type Buffer struct {
	parts []string
	size  int
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds fragments to the end of the buffer. Empty strings are dropped.
func (b *Buffer) Append(parts ...string) {
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.parts = append(b.parts, p)
		b.size += len(p)
	}
}

// AppendByte adds a single byte fragment.
func (b *Buffer) AppendByte(ch byte) {
	b.Append(string(ch))
}

// Len returns the number of fragments.
func (b *Buffer) Len() int {
	return len(b.parts)
}

// Size returns the total byte length of all fragments.
func (b *Buffer) Size() int {
	return b.size
}

// String concatenates all fragments in order.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for _, p := range b.parts {
		sb.WriteString(p)
	}
	return sb.String()
}
