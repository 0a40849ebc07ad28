package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
)

// jsonSchemaVersion versions the JSON document layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version       string      `json:"version"`
	EngineVersion string      `json:"engineVersion"`
	Source        string      `json:"source,omitempty"`
	Lints         []JSONLint  `json:"lints"`
	Fixed         *string     `json:"fixed,omitempty"`
	Skipped       int         `json:"skipped,omitempty"`
	Summary       JSONSummary `json:"summary"`
}

// JSONLint represents a single lint.
type JSONLint struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Start       int       `json:"start"`
	End         int       `json:"end"`
	Text        string    `json:"text"`
	Suggestions []string  `json:"suggestions"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix represents the edit one suggestion would make.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	TotalLints int            `json:"totalLints"`
	Fixable    int            `json:"fixable"`
	ByKind     map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalLints, nil
}

func buildJSONOutput(result *Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Lints:   make([]JSONLint, 0),
		Summary: JSONSummary{ByKind: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	output.EngineVersion = result.EngineVersion
	output.Source = result.Source
	output.Fixed = result.Fixed
	output.Skipped = result.Skipped

	if len(result.Lints) > 0 {
		output.Lints = make([]JSONLint, 0, len(result.Lints))
	}

	for i := range result.Lints {
		l := &result.Lints[i]
		jsonLint := JSONLint{
			RuleID:      l.RuleID,
			RuleName:    l.RuleName,
			Kind:        string(l.Kind),
			Message:     l.Message,
			Start:       l.Span.Start,
			End:         l.Span.End,
			Text:        result.Snippet(l),
			Suggestions: make([]string, 0, len(l.Suggestions)),
		}
		for j := range l.Suggestions {
			edit, _ := l.Edit(j)
			jsonLint.Suggestions = append(jsonLint.Suggestions, edit.NewText)
			jsonLint.Fixes = append(jsonLint.Fixes, JSONFix{
				StartOffset: edit.StartOffset,
				EndOffset:   edit.EndOffset,
				NewText:     edit.NewText,
			})
		}
		output.Lints = append(output.Lints, jsonLint)
	}

	stats := pretty.NewStats(result.Lints)
	output.Summary.TotalLints = stats.Total
	output.Summary.Fixable = stats.Fixable
	for kind, n := range stats.ByKind {
		output.Summary.ByKind[string(kind)] = n
	}

	return output
}
