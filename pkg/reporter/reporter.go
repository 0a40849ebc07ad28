// Package reporter formats the lints of one analyzed text.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of lints reported and any write errors.
	Report(ctx context.Context, result *Result) (int, error)
}

// Result is one analyzed text and its lints.
type Result struct {
	// Source names where the text came from, such as "<stdin>".
	Source string

	// Text is the analyzed text.
	Text string

	// EngineVersion is the version of the engine that produced the lints.
	EngineVersion string

	// Lints are the findings in document order.
	Lints []lint.Lint

	// Fixed is the text with suggestions applied; nil unless fixing was
	// requested.
	Fixed *string

	// Skipped counts suggestions left out of Fixed because they overlapped
	// an earlier one.
	Skipped int
}

// Snippet returns the text l covers, or the empty string when its span does
// not fit the text.
func (r *Result) Snippet(l *lint.Lint) string {
	if l.Span.Start < 0 || l.Span.Start > l.Span.End || l.Span.End > len(r.Text) {
		return ""
	}
	return r.Text[l.Span.Start:l.Span.End]
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
