package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
)

// TextReporter prints the version banner, the lint count, and every lint
// with its suggestions.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. When result carries fixed text, only that
// text is printed.
func (r *TextReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	if result.Fixed != nil {
		fixed := *result.Fixed
		if !strings.HasSuffix(fixed, "\n") {
			fixed += "\n"
		}
		fmt.Fprint(r.bw, fixed)
		return len(result.Lints), nil
	}

	fmt.Fprint(r.bw, r.styles.FormatVersion(result.EngineVersion))
	fmt.Fprint(r.bw, r.styles.FormatLintCount(len(result.Lints)))
	for i := range result.Lints {
		l := &result.Lints[i]
		fmt.Fprint(r.bw, r.styles.FormatLint(i, result.Snippet(l), l))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(pretty.NewStats(result.Lints)))
	}

	return len(result.Lints), nil
}
