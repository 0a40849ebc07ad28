// Package abi is the flat surface over pkg/binding used by foreign callers.
// Objects are referred to by integer handles; Null is the failure value for
// handle-returning calls and -1 for count-returning calls. String results
// report failure through their bool.
//
// Free functions accept Null and handles that are unknown or already freed.
package abi

import (
	"context"
	"math"
	"sync"

	"github.com/yaklabco/gramlint/pkg/binding"
)

// Handle identifies a live object. Handles are never reused.
type Handle uintptr

// Null is the handle that refers to nothing.
const Null Handle = 0

// Invalid is returned by count-returning calls on failure.
const Invalid int32 = -1

type lintEntry struct {
	rec *binding.Lint
	set *binding.LintSet
}

type table struct {
	mu     sync.Mutex
	next   Handle
	docs   map[Handle]*binding.Document
	groups map[Handle]*binding.LintGroup
	lints  map[Handle]lintEntry
}

//nolint:gochecknoglobals // Process-wide handle table shared by all callers
var handles = &table{
	docs:   make(map[Handle]*binding.Document),
	groups: make(map[Handle]*binding.LintGroup),
	lints:  make(map[Handle]lintEntry),
}

// allocate returns a fresh handle. Callers hold t.mu.
func (t *table) allocate() Handle {
	t.next++
	return t.next
}

func (t *table) document(h Handle) *binding.Document {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.docs[h]
}

func (t *table) group(h Handle) *binding.LintGroup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.groups[h]
}

func (t *table) lint(h Handle) *binding.Lint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lints[h].rec
}

// CreateDocument tokenizes text. A nil slice stands for a null pointer and
// fails, as does text that is not valid UTF-8. Empty text succeeds.
func CreateDocument(text []byte) Handle {
	if text == nil {
		return Null
	}
	doc, err := binding.NewDocument(string(text))
	if err != nil {
		return Null
	}

	handles.mu.Lock()
	defer handles.mu.Unlock()
	h := handles.allocate()
	handles.docs[h] = doc
	return h
}

// FreeDocument releases a document handle.
func FreeDocument(h Handle) {
	handles.mu.Lock()
	doc := handles.docs[h]
	delete(handles.docs, h)
	handles.mu.Unlock()

	_ = doc.Close()
}

// GetDocumentText returns the source text of a document.
func GetDocumentText(h Handle) (string, bool) {
	text, err := handles.document(h).Text()
	return text, err == nil
}

// GetTokenCount returns the number of tokens, or Invalid.
func GetTokenCount(h Handle) int32 {
	n, err := handles.document(h).TokenCount()
	if err != nil {
		return Invalid
	}
	return count32(n)
}

// GetTokenText returns the text of token index.
func GetTokenText(h Handle, index int32) (string, bool) {
	text, err := handles.document(h).TokenText(int(index))
	return text, err == nil
}

// CreateLintGroup builds the curated rule set.
func CreateLintGroup() Handle {
	group, err := binding.NewDefaultLintGroup()
	if err != nil {
		return Null
	}

	handles.mu.Lock()
	defer handles.mu.Unlock()
	h := handles.allocate()
	handles.groups[h] = group
	return h
}

// FreeLintGroup releases a group handle.
func FreeLintGroup(h Handle) {
	handles.mu.Lock()
	group := handles.groups[h]
	delete(handles.groups, h)
	handles.mu.Unlock()

	_ = group.Close()
}

// GetLints analyzes a document with a group. It returns one handle per
// lint, in no particular order, and their count. An empty result is
// (nil, 0); failure is (nil, Invalid). The handles must be released
// together with FreeLints.
func GetLints(doc, group Handle) ([]Handle, int32) {
	set, err := binding.Analyze(context.Background(), handles.document(doc), handles.group(group))
	if err != nil {
		return nil, Invalid
	}

	records, err := set.Records()
	if err != nil || len(records) > math.MaxInt32 {
		_ = set.Close()
		return nil, Invalid
	}
	if len(records) == 0 {
		_ = set.Close()
		return nil, 0
	}

	out := make([]Handle, len(records))

	handles.mu.Lock()
	defer handles.mu.Unlock()
	for i, rec := range records {
		h := handles.allocate()
		handles.lints[h] = lintEntry{rec: rec, set: set}
		out[i] = h
	}
	return out, int32(len(out))
}

// FreeLints releases the first count handles of lints and the results they
// belong to.
func FreeLints(lints []Handle, count int32) {
	if count <= 0 || len(lints) == 0 {
		return
	}
	lints = lints[:min(int(count), len(lints))]

	sets := make(map[*binding.LintSet]struct{})

	handles.mu.Lock()
	for _, h := range lints {
		if entry, ok := handles.lints[h]; ok {
			sets[entry.set] = struct{}{}
			delete(handles.lints, h)
		}
	}
	handles.mu.Unlock()

	for set := range sets {
		_ = set.Close()
	}
}

// GetLintMessage returns the message of a lint.
func GetLintMessage(h Handle) (string, bool) {
	msg, err := handles.lint(h).Message()
	return msg, err == nil
}

// GetLintRange returns the byte range [start, end) of a lint, or
// (Invalid, Invalid).
func GetLintRange(h Handle) (start, end int32) {
	s, e, err := handles.lint(h).Range()
	if err != nil || e > math.MaxInt32 {
		return Invalid, Invalid
	}
	return int32(s), int32(e)
}

// GetSuggestionCount returns the number of suggestions of a lint, or Invalid.
func GetSuggestionCount(h Handle) int32 {
	n, err := handles.lint(h).SuggestionCount()
	if err != nil {
		return Invalid
	}
	return count32(n)
}

// GetSuggestionText returns suggestion index of a lint.
func GetSuggestionText(h Handle, index int32) (string, bool) {
	text, err := handles.lint(h).Suggestion(int(index))
	return text, err == nil
}

// GetEngineVersion returns the analysis engine version.
func GetEngineVersion() string {
	return binding.EngineVersion()
}

// GetBindingVersion returns the handle layer version.
func GetBindingVersion() string {
	return binding.BindingVersion()
}

func count32(n int) int32 {
	if n > math.MaxInt32 {
		return Invalid
	}
	return int32(n)
}
