package binding_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/binding"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

const sample = "Helloo ,Wrld!"

func newDoc(t *testing.T, text string) *binding.Document {
	t.Helper()
	doc, err := binding.NewDocument(text)
	require.NoError(t, err)
	t.Cleanup(func() { _ = doc.Close() })
	return doc
}

func newGroup(t *testing.T) *binding.LintGroup {
	t.Helper()
	group, err := binding.NewDefaultLintGroup()
	require.NoError(t, err)
	t.Cleanup(func() { _ = group.Close() })
	return group
}

func analyze(t *testing.T, text string) *binding.LintSet {
	t.Helper()
	set, err := binding.Analyze(t.Context(), newDoc(t, text), newGroup(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = set.Close() })
	return set
}

func TestDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", sample, "Ünïcödé  text,\nwith\tlines.", "`code` here"} {
		doc := newDoc(t, text)

		got, err := doc.Text()
		require.NoError(t, err)
		assert.Equal(t, text, got)

		count, err := doc.TokenCount()
		require.NoError(t, err)
		if text != "" {
			assert.GreaterOrEqual(t, count, 1)
		}

		var sb strings.Builder
		prevEnd := 0
		for i := range count {
			part, err := doc.TokenText(i)
			require.NoError(t, err)
			sb.WriteString(part)

			tok, err := doc.Token(i)
			require.NoError(t, err)
			assert.Equal(t, prevEnd, tok.Span.Start)
			prevEnd = tok.Span.End
		}
		assert.Equal(t, text, sb.String())
		assert.Equal(t, len(text), prevEnd)
	}
}

func TestDocument_Sample(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, sample)

	count, err := doc.TokenCount()
	require.NoError(t, err)
	require.Equal(t, 5, count)

	want := []string{"Helloo", " ", ",", "Wrld", "!"}
	for i, w := range want {
		got, err := doc.TokenText(i)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	tok, err := doc.Token(0)
	require.NoError(t, err)
	assert.Equal(t, document.TokWord, tok.Kind)
}

func TestDocument_TokenIndexBounds(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, sample)
	count, err := doc.TokenCount()
	require.NoError(t, err)

	for _, i := range []int{-1, count, count + 10} {
		_, err := doc.TokenText(i)
		require.ErrorIs(t, err, binding.ErrOutOfRange, "index %d", i)
		assert.NotErrorIs(t, err, binding.ErrInvalidInput)

		_, err = doc.Token(i)
		require.ErrorIs(t, err, binding.ErrOutOfRange, "index %d", i)
	}

	empty := newDoc(t, "")
	_, err = empty.TokenText(0)
	require.ErrorIs(t, err, binding.ErrOutOfRange)
}

func TestNewDocument_InvalidUTF8(t *testing.T) {
	t.Parallel()

	doc, err := binding.NewDocument("\xff\xfe")
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	assert.Nil(t, doc)

	var bErr *binding.Error
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "NewDocument", bErr.Op)
	require.ErrorIs(t, err, document.ErrInvalidText)

	_, err = binding.NewMarkdownDocument("\xc3\x28")
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestNewMarkdownDocument(t *testing.T) {
	t.Parallel()

	doc, err := binding.NewMarkdownDocument("Run `go tset` now.")
	require.NoError(t, err)
	defer doc.Close()

	isMD, err := doc.IsMarkdown()
	require.NoError(t, err)
	assert.True(t, isMD)

	group := newGroup(t)
	set, err := binding.Analyze(t.Context(), doc, group)
	require.NoError(t, err)
	defer set.Close()

	n, err := set.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDocument_UseAfterClose(t *testing.T) {
	t.Parallel()

	doc, err := binding.NewDocument(sample)
	require.NoError(t, err)
	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close(), "close is idempotent")

	_, err = doc.Text()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = doc.TokenCount()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = doc.TokenText(0)
	require.ErrorIs(t, err, binding.ErrInvalidInput)

	_, err = binding.Analyze(t.Context(), doc, newGroup(t))
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestNilHandles(t *testing.T) {
	t.Parallel()

	var (
		doc   *binding.Document
		group *binding.LintGroup
		set   *binding.LintSet
		rec   *binding.Lint
	)

	require.NoError(t, doc.Close())
	require.NoError(t, group.Close())
	require.NoError(t, set.Close())

	_, err := doc.Text()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = group.Name()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = set.Len()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = rec.Message()
	require.ErrorIs(t, err, binding.ErrInvalidInput)

	_, err = binding.Analyze(t.Context(), nil, newGroup(t))
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = binding.Analyze(t.Context(), newDoc(t, sample), nil)
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestLintGroup(t *testing.T) {
	t.Parallel()

	group := newGroup(t)

	name, err := group.Name()
	require.NoError(t, err)
	assert.Equal(t, lint.CuratedGroupName, name)

	ids, err := group.RuleIDs()
	require.NoError(t, err)
	assert.Contains(t, ids, "GL001")
	assert.NotContains(t, ids, "GL008")

	require.NoError(t, group.Close())
	require.NoError(t, group.Close())
	_, err = group.RuleIDs()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = binding.Analyze(t.Context(), newDoc(t, sample), group)
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestNewLintGroup_Config(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"long-sentences"}
	cfg.Dictionary = []string{"helloo", "wrld"}

	group, err := binding.NewLintGroup(cfg)
	require.NoError(t, err)
	defer group.Close()

	ids, err := group.RuleIDs()
	require.NoError(t, err)
	assert.Contains(t, ids, "GL008")

	set, err := binding.Analyze(t.Context(), newDoc(t, sample), group)
	require.NoError(t, err)
	defer set.Close()

	records, err := set.Records()
	require.NoError(t, err)
	for _, rec := range records {
		id, err := rec.RuleID()
		require.NoError(t, err)
		assert.NotEqual(t, "GL001", id, "extra dictionary words are known")
	}

	none := config.NewConfig()
	none.DisableRules = ids
	_, err = binding.NewLintGroup(none)
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestAnalyze_Sample(t *testing.T) {
	t.Parallel()

	set := analyze(t, sample)

	n, err := set.Len()
	require.NoError(t, err)
	records, err := set.Records()
	require.NoError(t, err)
	require.Len(t, records, n)
	require.Equal(t, 4, n)

	ordered := binding.Order(records)
	type view struct {
		start, end  int
		snippet     string
		suggestions []string
	}
	var got []view
	for _, rec := range ordered {
		require.NotNil(t, rec)
		start, end, err := rec.Range()
		require.NoError(t, err)
		assert.LessOrEqual(t, start, end)
		assert.LessOrEqual(t, end, len(sample))

		msg, err := rec.Message()
		require.NoError(t, err)
		assert.NotEmpty(t, msg)

		count, err := rec.SuggestionCount()
		require.NoError(t, err)
		var suggestions []string
		for j := range count {
			s, err := rec.Suggestion(j)
			require.NoError(t, err)
			suggestions = append(suggestions, s)
		}
		_, err = rec.Suggestion(count)
		require.ErrorIs(t, err, binding.ErrOutOfRange)
		_, err = rec.Suggestion(-1)
		require.ErrorIs(t, err, binding.ErrOutOfRange)

		got = append(got, view{start, end, sample[start:end], suggestions})
	}

	require.Len(t, got, 4)
	assert.Equal(t, "Helloo", got[0].snippet)
	assert.Contains(t, got[0].suggestions, "Hello")
	assert.Equal(t, " ", got[1].snippet)
	assert.Equal(t, []string{""}, got[1].suggestions)
	assert.Equal(t, ",", got[2].snippet)
	assert.Equal(t, []string{", "}, got[2].suggestions)
	assert.Equal(t, "Wrld", got[3].snippet)
	assert.Contains(t, got[3].suggestions, "World")

	kind, err := ordered[0].Kind()
	require.NoError(t, err)
	assert.Equal(t, lint.KindSpelling, kind)
	name, err := ordered[0].RuleName()
	require.NoError(t, err)
	assert.Equal(t, "spell-check", name)
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "")
	count, err := doc.TokenCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	set := analyze(t, "")
	n, err := set.Len()
	require.NoError(t, err)
	assert.Zero(t, n)

	records, err := set.Records()
	require.NoError(t, err)
	assert.Nil(t, records)

	ordered, err := set.Ordered()
	require.NoError(t, err)
	assert.Nil(t, ordered)
}

func TestAnalyze_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	set, err := binding.Analyze(ctx, newDoc(t, sample), newGroup(t))
	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, binding.ErrAllocation)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, binding.ErrInvalidInput)

	var bindErr *binding.Error
	require.True(t, errors.As(err, &bindErr))
	assert.Equal(t, "Analyze", bindErr.Op)
}

func TestLintSet_Close(t *testing.T) {
	t.Parallel()

	set := analyze(t, sample)
	records, err := set.Records()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	require.NoError(t, set.Close())
	require.NoError(t, set.Close())

	_, err = set.Len()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
	_, err = set.Records()
	require.ErrorIs(t, err, binding.ErrInvalidInput)

	for _, rec := range records {
		_, err := rec.Message()
		require.ErrorIs(t, err, binding.ErrInvalidInput)
		_, _, err = rec.Range()
		require.ErrorIs(t, err, binding.ErrInvalidInput)
		_, err = rec.Suggestion(0)
		require.ErrorIs(t, err, binding.ErrInvalidInput)
	}
}

func TestLintSet_OutlivesDocumentAndGroup(t *testing.T) {
	t.Parallel()

	doc, err := binding.NewDocument(sample)
	require.NoError(t, err)
	group, err := binding.NewDefaultLintGroup()
	require.NoError(t, err)

	set, err := binding.Analyze(t.Context(), doc, group)
	require.NoError(t, err)
	defer set.Close()

	require.NoError(t, doc.Close())
	require.NoError(t, group.Close())

	ordered, err := set.Ordered()
	require.NoError(t, err)
	require.NotEmpty(t, ordered)
	msg, err := ordered[0].Message()
	require.NoError(t, err)
	assert.NotEmpty(t, msg)
}

func starts(t *testing.T, records []*binding.Lint) []int {
	t.Helper()
	out := make([]int, 0, len(records))
	for _, rec := range records {
		start, _, err := rec.Range()
		require.NoError(t, err)
		out = append(out, start)
	}
	return out
}

func TestOrder_Properties(t *testing.T) {
	t.Parallel()

	text := "hello  world. the the cat sat on a apple , teh end ,wrong;ok"
	set := analyze(t, text)
	records, err := set.Records()
	require.NoError(t, err)
	require.Greater(t, len(records), 3)

	input := slices.Clone(records)
	ordered := binding.Order(records)

	// Pure: input untouched.
	assert.Equal(t, input, records)

	// Permutation of the input.
	assert.ElementsMatch(t, records, ordered)

	// Sorted by start.
	assert.True(t, slices.IsSorted(starts(t, ordered)))

	// Idempotent.
	assert.Equal(t, ordered, binding.Order(ordered))

	// Permutation invariant up to ties.
	rng := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		shuffled := slices.Clone(records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, starts(t, ordered), starts(t, binding.Order(shuffled)))
	}
}

func TestOrder_StableOnTies(t *testing.T) {
	t.Parallel()

	// Two sets over the same text give records with equal starts.
	first := analyze(t, "A apple")
	second := analyze(t, "A apple")
	a, err := first.Records()
	require.NoError(t, err)
	b, err := second.Records()
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)

	in := []*binding.Lint{b[0], a[0], nil}
	ordered := binding.Order(in)
	assert.Equal(t, []*binding.Lint{nil, b[0], a[0]}, ordered)

	assert.Nil(t, binding.Order(nil))
	assert.Empty(t, binding.Order([]*binding.Lint{}))
}

func TestAnalyze_Concurrent(t *testing.T) {
	t.Parallel()

	group := newGroup(t)
	texts := []string{sample, "", "the the cat", "a apple", "hello  world"}
	docs := make([]*binding.Document, len(texts))
	want := make([]int, len(texts))
	for i, text := range texts {
		docs[i] = newDoc(t, text)
		set, err := binding.Analyze(t.Context(), docs[i], group)
		require.NoError(t, err)
		want[i], err = set.Len()
		require.NoError(t, err)
		require.NoError(t, set.Close())
	}

	var wg sync.WaitGroup
	for range 8 {
		for i := range docs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				set, err := binding.Analyze(t.Context(), docs[i], group)
				if !assert.NoError(t, err) {
					return
				}
				defer set.Close()
				n, err := set.Len()
				assert.NoError(t, err)
				assert.Equal(t, want[i], n)
			}()
		}
	}
	wg.Wait()
}

func TestClose_WaitsForReaders(t *testing.T) {
	t.Parallel()

	doc, err := binding.NewDocument(strings.Repeat("the the cat sat. ", 200))
	require.NoError(t, err)
	group := newGroup(t)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := binding.Analyze(t.Context(), doc, group)
			if err != nil {
				assert.ErrorIs(t, err, binding.ErrInvalidInput)
				return
			}
			assert.NoError(t, set.Close())
		}()
	}
	require.NoError(t, doc.Close())
	wg.Wait()

	_, err = doc.Text()
	require.ErrorIs(t, err, binding.ErrInvalidInput)
}

func TestVersions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lint.Version, binding.EngineVersion())
	assert.Equal(t, binding.Version, binding.BindingVersion())
	assert.NotEmpty(t, binding.EngineVersion())
	assert.NotEmpty(t, binding.BindingVersion())
}

func TestError(t *testing.T) {
	t.Parallel()

	err := &binding.Error{Op: "TokenText", Kind: binding.ErrOutOfRange}
	assert.Equal(t, "TokenText: index out of range", err.Error())
	require.ErrorIs(t, err, binding.ErrOutOfRange)
	assert.NotErrorIs(t, err, binding.ErrAllocation)
	assert.NoError(t, err.Unwrap())
}
