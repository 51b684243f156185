// Package markup is the public entry point for converting blockmark documents
// to HTML.
//
// Callers pass only the options they want to change; everything else comes
// from config.Defaults:
//
//	html := markup.Compile(text, config.Overrides{Pretty: config.Bool(true)})
package markup

import (
	"context"

	"github.com/yaklabco/blockmark/pkg/block"
	"github.com/yaklabco/blockmark/pkg/config"
)

// Compile converts text to HTML synchronously.
func Compile(text string, overrides config.Overrides, options ...block.Option) string {
	return block.Compile(text, resolve(overrides), options...)
}

// CompileWithStats converts text to HTML and reports how many blocks of each
// kind were emitted.
func CompileWithStats(text string, overrides config.Overrides, options ...block.Option) (string, block.Stats) {
	session := block.NewSession(text, resolve(overrides), options...)
	for session.Step() {
	}
	// A background context never cancels, so Drain only assembles the output.
	html, _ := session.Drain(context.Background())
	return html, session.Stats()
}

// Render converts text to HTML on a separate goroutine, yielding between
// top-level blocks. done is called exactly once, with ctx.Err() if the
// context was cancelled before the document was finished.
func Render(ctx context.Context, text string, overrides config.Overrides, done func(html string, err error)) {
	block.Render(ctx, text, resolve(overrides), done)
}

func resolve(overrides config.Overrides) config.Options {
	return config.Merge(config.Defaults(), overrides)
}
