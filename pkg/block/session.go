package block

import (
	"context"
	"runtime"

	"github.com/yaklabco/blockmark/pkg/config"
	"github.com/yaklabco/blockmark/pkg/cursor"
)

// Session compiles a document one top-level block at a time.
type Session struct {
	compiler *Compiler
	cursor   *cursor.Cursor
}

// NewSession prepares a staged compilation of text.
func NewSession(text string, opts config.Options, options ...Option) *Session {
	return &Session{
		compiler: New(opts, options...),
		cursor:   cursor.New(text),
	}
}

// Step consumes one top-level block and reports whether input remains.
func (s *Session) Step() bool {
	if s.cursor.HasCurrent() {
		s.compiler.EmitBlock(s.cursor)
	}
	return s.cursor.HasCurrent()
}

// Done reports whether the whole input has been consumed.
func (s *Session) Done() bool {
	return !s.cursor.HasCurrent()
}

// Drain steps through the remaining blocks, yielding the processor after each
// one. Cancellation is observed only between blocks.
func (s *Session) Drain(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !s.Step() {
			return s.compiler.String(), nil
		}
		runtime.Gosched()
	}
}

// Stats returns the per-kind counts of the blocks compiled so far.
func (s *Session) Stats() Stats {
	return s.compiler.Stats()
}

// Render compiles text on its own goroutine and calls done exactly once with
// the result. Without cancellation the HTML equals Compile(text, opts).
func Render(ctx context.Context, text string, opts config.Options, done func(html string, err error)) {
	session := NewSession(text, opts)
	go func() {
		done(session.Drain(ctx))
	}()
}
