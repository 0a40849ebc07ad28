package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
	"github.com/yaklabco/gramlint/pkg/reporter"
)

// sampleResult mirrors what the curated group reports for "Helloo ,Wrld!".
func sampleResult() *reporter.Result {
	return &reporter.Result{
		Source:        "<argument>",
		Text:          "Helloo ,Wrld!",
		EngineVersion: "0.4.0",
		Lints: []lint.Lint{
			{
				RuleID: "GL001", RuleName: "spell-check", Kind: lint.KindSpelling,
				Span:        document.Span{Start: 0, End: 6},
				Message:     `Did you mean to spell "Helloo" this way?`,
				Suggestions: []string{"Hello", "Yellow"},
			},
			{
				RuleID: "GL002", RuleName: "space-before-punctuation", Kind: lint.KindPunctuation,
				Span:        document.Span{Start: 6, End: 7},
				Message:     "Remove the space before the punctuation.",
				Suggestions: []string{""},
			},
			{
				RuleID: "GL003", RuleName: "missing-space-after-comma", Kind: lint.KindPunctuation,
				Span:        document.Span{Start: 7, End: 8},
				Message:     "Add a space after the comma.",
				Suggestions: []string{", "},
			},
			{
				RuleID: "GL001", RuleName: "spell-check", Kind: lint.KindSpelling,
				Span:    document.Span{Start: 8, End: 12},
				Message: `Did you mean to spell "Wrld" this way?`,
			},
		},
	}
}

func newReporter(t *testing.T, format reporter.Format, mutate ...func(*reporter.Options)) (reporter.Reporter, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = format
	opts.Color = "never"
	for _, m := range mutate {
		m(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep, &buf
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{"", reporter.FormatText, false},
		{"text", reporter.FormatText, false},
		{"table", reporter.FormatTable, false},
		{"json", reporter.FormatJSON, false},
		{"sarif", reporter.FormatSARIF, false},
		{"summary", reporter.FormatSummary, false},
		{"diff", "", true},
		{"xml", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	assert.Equal(t, "Helloo", result.Snippet(&result.Lints[0]))
	assert.Equal(t, " ", result.Snippet(&result.Lints[1]))
	assert.Empty(t, result.Snippet(&lint.Lint{Span: document.Span{Start: 5, End: 99}}))
	assert.Empty(t, result.Snippet(&lint.Lint{Span: document.Span{Start: 3, End: 2}}))
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatText)
	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	want := "Using gramlint engine version: 0.4.0\n" +
		"4 lints:\n" +
		"Lint 0: 'Helloo' : Did you mean to spell \"Helloo\" this way? (suggestions: 2)\n" +
		"  Suggestion 0: Hello\n" +
		"  Suggestion 1: Yellow\n" +
		"Lint 1: ' ' : Remove the space before the punctuation. (suggestions: 1)\n" +
		"  Suggestion 0: \n" +
		"Lint 2: ',' : Add a space after the comma. (suggestions: 1)\n" +
		"  Suggestion 0: , \n" +
		"Lint 3: 'Wrld' : Did you mean to spell \"Wrld\" this way? (suggestions: 0)\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Summary(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatText, func(o *reporter.Options) { o.ShowSummary = true })
	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(buf.String(), "4 lints (2 spelling, 2 punctuation), 3 fixable\n"))
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatText)
	n, err := rep.Report(context.Background(), &reporter.Result{EngineVersion: "0.4.0"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "Using gramlint engine version: 0.4.0\n0 lints:\n", buf.String())

	n, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTextReporter_Fixed(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	fixed := "Hello, Wrld!"
	result.Fixed = &fixed

	rep, buf := newReporter(t, reporter.FormatText)
	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "Hello, Wrld!\n", buf.String())
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatJSON)
	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.Equal(t, "0.4.0", out.EngineVersion)
	assert.Equal(t, "<argument>", out.Source)
	assert.Nil(t, out.Fixed)
	require.Len(t, out.Lints, 4)

	first := out.Lints[0]
	assert.Equal(t, "GL001", first.RuleID)
	assert.Equal(t, "spelling", first.Kind)
	assert.Equal(t, "Helloo", first.Text)
	assert.Equal(t, []string{"Hello", "Yellow"}, first.Suggestions)
	assert.Equal(t, []reporter.JSONFix{
		{StartOffset: 0, EndOffset: 6, NewText: "Hello"},
		{StartOffset: 0, EndOffset: 6, NewText: "Yellow"},
	}, first.Fixes)

	last := out.Lints[3]
	assert.Equal(t, []string{}, last.Suggestions)
	assert.Empty(t, last.Fixes)

	assert.Equal(t, 4, out.Summary.TotalLints)
	assert.Equal(t, 3, out.Summary.Fixable)
	assert.Equal(t, map[string]int{"spelling": 2, "punctuation": 2}, out.Summary.ByKind)
}

func TestJSONReporter_CompactAndFixed(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	fixed := "Hello, Wrld!"
	result.Fixed = &fixed
	result.Skipped = 1

	rep, buf := newReporter(t, reporter.FormatJSON, func(o *reporter.Options) { o.Compact = true })
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"fixed":"Hello, Wrld!"`)
	assert.Contains(t, buf.String(), `"skipped":1`)
}

func TestJSONReporter_Nil(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatJSON)
	n, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), `"lints": []`)
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatSARIF)
	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	var out reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "2.1.0", out.Version)
	require.Len(t, out.Runs, 1)
	run := out.Runs[0]
	assert.Equal(t, "gramlint", run.Tool.Driver.Name)
	assert.Equal(t, "0.4.0", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 3)
	assert.Equal(t, "GL001", run.Tool.Driver.Rules[0].ID)

	require.Len(t, run.Results, 4)
	loc := run.Results[2].Locations[0].PhysicalLocation
	assert.Equal(t, "<argument>", loc.ArtifactLocation.URI)
	assert.Equal(t, reporter.SARIFRegion{CharOffset: 7, CharLength: 1}, loc.Region)

	require.Len(t, run.Results[0].Fixes, 2)
	assert.Equal(t, "Hello", run.Results[0].Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text)
	assert.Empty(t, run.Results[3].Fixes)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatTable, func(o *reporter.Options) {
		o.ShowSummary = true
		o.RuleFormat = config.RuleFormatID
	})
	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	out := buf.String()
	assert.Contains(t, out, "RANGE")
	assert.Contains(t, out, "0-6")
	assert.Contains(t, out, "GL003")
	assert.NotContains(t, out, "spell-check")
	assert.Contains(t, out, "4 lints | 2 spelling | 2 punctuation | 3 fixable")
	assert.Contains(t, out, "--fix")
}

func TestTableReporter_Empty(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatTable, func(o *reporter.Options) { o.ShowSummary = true })
	n, err := rep.Report(context.Background(), &reporter.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No lints found.\n", buf.String())
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatSummary)
	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 8)
	assert.Equal(t, "Rules Summary", lines[0])
	assert.True(t, strings.HasPrefix(lines[4], "spell-check"), lines[4])
	assert.Contains(t, lines[4], "2")
	assert.True(t, strings.HasPrefix(lines[5], "space-before-punctuation"), lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "missing-space-after-comma"), lines[6])
	assert.Contains(t, buf.String(), "Total: 4 lints (2 spelling, 2 punctuation), 3 fixable")
}

func TestSummaryReporter_Empty(t *testing.T) {
	t.Parallel()

	rep, buf := newReporter(t, reporter.FormatSummary)
	n, err := rep.Report(context.Background(), &reporter.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No lints found\n", buf.String())
}
