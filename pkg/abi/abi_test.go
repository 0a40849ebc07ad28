package abi_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/abi"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	doc := abi.CreateDocument([]byte("Helloo ,Wrld!"))
	require.NotEqual(t, abi.Null, doc)
	defer abi.FreeDocument(doc)

	text, ok := abi.GetDocumentText(doc)
	require.True(t, ok)
	assert.Equal(t, "Helloo ,Wrld!", text)

	count := abi.GetTokenCount(doc)
	require.Equal(t, int32(5), count)

	var sb strings.Builder
	for i := range count {
		part, ok := abi.GetTokenText(doc, i)
		require.True(t, ok)
		sb.WriteString(part)
	}
	assert.Equal(t, text, sb.String())

	_, ok = abi.GetTokenText(doc, count)
	assert.False(t, ok)
	_, ok = abi.GetTokenText(doc, -1)
	assert.False(t, ok)
}

func TestCreateDocument_Failures(t *testing.T) {
	t.Parallel()

	assert.Equal(t, abi.Null, abi.CreateDocument(nil))
	assert.Equal(t, abi.Null, abi.CreateDocument([]byte{0xff}))

	empty := abi.CreateDocument([]byte{})
	require.NotEqual(t, abi.Null, empty)
	defer abi.FreeDocument(empty)

	assert.Equal(t, int32(0), abi.GetTokenCount(empty))
	text, ok := abi.GetDocumentText(empty)
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestInvalidHandles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, abi.Invalid, abi.GetTokenCount(abi.Null))
	_, ok := abi.GetDocumentText(abi.Null)
	assert.False(t, ok)
	_, ok = abi.GetLintMessage(abi.Null)
	assert.False(t, ok)
	start, end := abi.GetLintRange(abi.Null)
	assert.Equal(t, abi.Invalid, start)
	assert.Equal(t, abi.Invalid, end)
	assert.Equal(t, abi.Invalid, abi.GetSuggestionCount(abi.Null))
	_, ok = abi.GetSuggestionText(abi.Null, 0)
	assert.False(t, ok)

	lints, count := abi.GetLints(abi.Null, abi.Null)
	assert.Nil(t, lints)
	assert.Equal(t, abi.Invalid, count)

	// Free functions tolerate null and unknown handles.
	abi.FreeDocument(abi.Null)
	abi.FreeDocument(abi.Handle(1 << 40))
	abi.FreeLintGroup(abi.Null)
	abi.FreeLints(nil, 0)
	abi.FreeLints([]abi.Handle{abi.Handle(1 << 40)}, 1)
}

func TestFreeDocument_Twice(t *testing.T) {
	t.Parallel()

	doc := abi.CreateDocument([]byte("text"))
	require.NotEqual(t, abi.Null, doc)
	abi.FreeDocument(doc)
	abi.FreeDocument(doc)

	assert.Equal(t, abi.Invalid, abi.GetTokenCount(doc))
}

func TestGetLints(t *testing.T) {
	t.Parallel()

	const text = "Helloo ,Wrld!"
	doc := abi.CreateDocument([]byte(text))
	require.NotEqual(t, abi.Null, doc)
	defer abi.FreeDocument(doc)

	group := abi.CreateLintGroup()
	require.NotEqual(t, abi.Null, group)
	defer abi.FreeLintGroup(group)

	lints, count := abi.GetLints(doc, group)
	require.Positive(t, count)
	require.Len(t, lints, int(count))
	assert.NotContains(t, lints, abi.Null)

	type record struct {
		start, end int32
		message    string
	}
	records := make([]record, 0, count)
	for _, h := range lints {
		start, end := abi.GetLintRange(h)
		assert.GreaterOrEqual(t, start, int32(0))
		assert.LessOrEqual(t, start, end)
		assert.LessOrEqual(t, end, int32(len(text)))

		msg, ok := abi.GetLintMessage(h)
		require.True(t, ok)

		n := abi.GetSuggestionCount(h)
		require.GreaterOrEqual(t, n, int32(0))
		for j := range n {
			_, ok := abi.GetSuggestionText(h, j)
			assert.True(t, ok)
		}
		_, ok = abi.GetSuggestionText(h, n)
		assert.False(t, ok)

		records = append(records, record{start, end, msg})
	}

	slices.SortStableFunc(records, func(a, b record) int { return int(a.start - b.start) })
	assert.Equal(t, int32(0), records[0].start)
	assert.Contains(t, records[0].message, "Helloo")

	abi.FreeLints(lints, count)
	_, ok := abi.GetLintMessage(lints[0])
	assert.False(t, ok)
	abi.FreeLints(lints, count)
}

func TestGetLints_Empty(t *testing.T) {
	t.Parallel()

	doc := abi.CreateDocument([]byte(""))
	defer abi.FreeDocument(doc)
	group := abi.CreateLintGroup()
	defer abi.FreeLintGroup(group)

	lints, count := abi.GetLints(doc, group)
	assert.Nil(t, lints)
	assert.Equal(t, int32(0), count)
}

func TestVersions(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, abi.GetEngineVersion())
	assert.NotEmpty(t, abi.GetBindingVersion())
}
