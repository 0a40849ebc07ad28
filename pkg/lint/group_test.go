package lint_test

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/dictionary"
	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// wordRule flags every word token.
type wordRule struct {
	lint.BaseRule
}

func newWordRule(id string) *wordRule {
	return &wordRule{BaseRule: lint.NewBaseRule(id, id+"-words", "flags words", lint.KindStyle, nil)}
}

func (r *wordRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	var lints []lint.Lint
	for _, tok := range ctx.Tokens() {
		if tok.IsWord() {
			lints = append(lints, lint.Lint{
				Span:    tok.Span,
				Message: "word " + ctx.Text(tok),
			})
		}
	}
	return lints, nil
}

// unknownRule flags words missing from the pass dictionary.
type unknownRule struct {
	lint.BaseRule
}

func (r *unknownRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	var lints []lint.Lint
	for _, tok := range ctx.Tokens() {
		if tok.IsWord() && !ctx.Dictionary.Contains(ctx.Text(tok)) {
			lints = append(lints, r.NewLint(tok.Span.Start, tok.Span.End, "unknown").Build())
		}
	}
	return lints, nil
}

// funcRule runs a custom function.
type funcRule struct {
	lint.BaseRule
	apply func(*lint.RuleContext) ([]lint.Lint, error)
}

func (r *funcRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	return r.apply(ctx)
}

func newFuncRule(id string, apply func(*lint.RuleContext) ([]lint.Lint, error)) *funcRule {
	return &funcRule{BaseRule: lint.NewBaseRule(id, id, "", lint.KindStyle, nil), apply: apply}
}

func mustDoc(t *testing.T, text string) *document.Document {
	t.Helper()
	doc, err := document.New(text)
	require.NoError(t, err)
	return doc
}

func TestNewGroup_NoRules(t *testing.T) {
	t.Parallel()

	_, err := lint.NewGroup("empty", lint.NewRegistry(), nil)
	require.ErrorIs(t, err, lint.ErrNoRules)

	_, err = lint.NewGroup("nil", nil, nil)
	require.ErrorIs(t, err, lint.ErrNoRules)

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	cfg := config.NewConfig()
	cfg.DisableRules = []string{testRuleID1}
	_, err = lint.NewGroup("disabled", registry, cfg)
	require.ErrorIs(t, err, lint.ErrNoRules)
}

func TestGroup_Lint(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	registry.Register(newWordRule(testRuleID2))

	group, err := lint.NewGroup("test", registry, nil)
	require.NoError(t, err)
	assert.Equal(t, "test", group.Name())
	require.Len(t, group.Rules(), 2)

	doc := mustDoc(t, "one two three")
	lints, err := group.Lint(t.Context(), doc)
	require.NoError(t, err)
	require.Len(t, lints, 6)

	for _, l := range lints {
		assert.Contains(t, []string{testRuleID1, testRuleID2}, l.RuleID)
		assert.Equal(t, l.RuleID+"-words", l.RuleName)
		assert.Equal(t, lint.KindStyle, l.Kind)
		assert.LessOrEqual(t, l.Span.Start, l.Span.End)
		assert.LessOrEqual(t, l.Span.End, doc.Len())
	}
}

func TestGroup_LintEmptyDocument(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	group, err := lint.NewGroup("test", registry, nil)
	require.NoError(t, err)

	lints, err := group.Lint(t.Context(), mustDoc(t, ""))
	require.NoError(t, err)
	assert.Nil(t, lints)

	_, err = group.Lint(t.Context(), nil)
	require.ErrorIs(t, err, lint.ErrNilDocument)
}

func TestGroup_RuleError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	registry.Register(newFuncRule(testRuleID2, func(*lint.RuleContext) ([]lint.Lint, error) {
		return nil, boom
	}))

	group, err := lint.NewGroup("test", registry, nil)
	require.NoError(t, err)

	lints, err := group.Lint(t.Context(), mustDoc(t, "text"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), testRuleID2)
	assert.Nil(t, lints)
}

func TestGroup_SpanOutsideDocument(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newFuncRule(testRuleID1, func(ctx *lint.RuleContext) ([]lint.Lint, error) {
		return []lint.Lint{lint.NewLint(testRuleID1, 0, ctx.Document.Len()+1, "too far").Build()}, nil
	}))

	group, err := lint.NewGroup("test", registry, nil)
	require.NoError(t, err)

	_, err = group.Lint(t.Context(), mustDoc(t, "abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside document")
}

func TestGroup_Cancelled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	group, err := lint.NewGroup("test", registry, nil, lint.WithJobs(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = group.Lint(ctx, mustDoc(t, "text"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestGroup_Dictionary(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&unknownRule{BaseRule: lint.NewBaseRule(testRuleID1, "unknown", "", lint.KindSpelling, nil)})

	cfg := config.NewConfig()
	cfg.Dictionary = []string{"gramlint"}

	group, err := lint.NewGroup("test", registry, cfg,
		lint.WithDictionary(dictionary.New([]string{"hello"})))
	require.NoError(t, err)
	assert.True(t, group.Dictionary().Contains("gramlint"))

	lints, err := group.Lint(t.Context(), mustDoc(t, "hello gramlint wrld"))
	require.NoError(t, err)
	require.Len(t, lints, 1)
	assert.Equal(t, document.Span{Start: 15, End: 19}, lints[0].Span)
	assert.Equal(t, lint.KindSpelling, lints[0].Kind)
}

func TestGroup_RuleOptions(t *testing.T) {
	t.Parallel()

	var got int
	registry := lint.NewRegistry()
	registry.Register(newFuncRule(testRuleID1, func(ctx *lint.RuleContext) ([]lint.Lint, error) {
		got = ctx.OptionInt("limit", 0)
		return nil, nil
	}))

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Options: map[string]any{"limit": 7}}

	group, err := lint.NewGroup("test", registry, cfg)
	require.NoError(t, err)

	_, err = group.Lint(t.Context(), mustDoc(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestGroup_ConcurrentLint(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	group, err := lint.NewGroup("test", registry, nil)
	require.NoError(t, err)

	docs := []*document.Document{
		mustDoc(t, "a b"),
		mustDoc(t, "one two three"),
		mustDoc(t, ""),
		mustDoc(t, "x y z w"),
	}
	want := []int{2, 3, 0, 4}

	var wg sync.WaitGroup
	for range 8 {
		for i, doc := range docs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lints, err := group.Lint(context.Background(), doc)
				assert.NoError(t, err)
				assert.Len(t, lints, want[i])
			}()
		}
	}
	wg.Wait()
}

func TestGroup_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics, err := lint.NewMetrics(reg)
	require.NoError(t, err)

	// Registering twice reuses the collectors.
	again, err := lint.NewMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, again)

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	group, err := lint.NewGroup("metered", registry, nil, lint.WithMetrics(metrics))
	require.NoError(t, err)

	_, err = group.Lint(t.Context(), mustDoc(t, "one two"))
	require.NoError(t, err)
	_, err = group.Lint(t.Context(), mustDoc(t, "three"))
	require.NoError(t, err)

	expected := `
# HELP gramlint_analysis_lints_total Total lints produced by rule
# TYPE gramlint_analysis_lints_total counter
gramlint_analysis_lints_total{rule="GL901"} 3
# HELP gramlint_analysis_passes_total Total analysis passes by group and status
# TYPE gramlint_analysis_passes_total counter
gramlint_analysis_passes_total{group="metered",status="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, bytes.NewBufferString(expected),
		"gramlint_analysis_lints_total", "gramlint_analysis_passes_total"))
	count, err := testutil.GatherAndCount(reg, "gramlint_analysis_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGroup_DebugLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(t.Context(), logging.NewWriter(&buf, "debug"))

	registry := lint.NewRegistry()
	registry.Register(newWordRule(testRuleID1))
	group, err := lint.NewGroup("logged", registry, nil)
	require.NoError(t, err)

	_, err = group.Lint(ctx, mustDoc(t, "one two"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "analysis finished")
	assert.Contains(t, out, "group=logged")
	assert.Contains(t, out, "lints=2")
	assert.Contains(t, out, "pass=")
}

func TestOrdered(t *testing.T) {
	t.Parallel()

	lints := []lint.Lint{
		{RuleID: "c", Span: document.Span{Start: 8, End: 12}},
		{RuleID: "a", Span: document.Span{Start: 0, End: 6}},
		{RuleID: "b1", Span: document.Span{Start: 6, End: 7}},
		{RuleID: "b2", Span: document.Span{Start: 6, End: 6}},
	}
	input := slices.Clone(lints)

	ordered := lint.Ordered(lints)

	ids := make([]string, 0, len(ordered))
	for _, l := range ordered {
		ids = append(ids, l.RuleID)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
	assert.Equal(t, input, lints)
	assert.Equal(t, ordered, lint.Ordered(ordered))
	assert.Nil(t, lint.Ordered(nil))
}

func TestOrderByStart_PermutationInvariant(t *testing.T) {
	t.Parallel()

	starts := []int{5, 1, 3, 1, 0, 9, 3}
	want := lint.OrderByStart(starts, func(n int) int { return n })
	assert.True(t, slices.IsSorted(want))

	perm := slices.Clone(starts)
	slices.Reverse(perm)
	assert.Equal(t, want, lint.OrderByStart(perm, func(n int) int { return n }))
}
