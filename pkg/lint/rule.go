// Package lint provides the rule engine, lints, and registry for gramlint.
package lint

import (
	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/fix"
)

// Kind categorizes what a lint complains about.
type Kind string

// Lint kinds.
const (
	KindSpelling       Kind = "spelling"
	KindPunctuation    Kind = "punctuation"
	KindRepetition     Kind = "repetition"
	KindCapitalization Kind = "capitalization"
	KindWordChoice     Kind = "word-choice"
	KindStyle          Kind = "style"
)

// Lint is a single finding over a byte range of a document.
type Lint struct {
	// RuleID is the identifier of the rule that produced this lint.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "spell-check").
	RuleName string

	// Kind categorizes the lint.
	Kind Kind

	// Span is the byte range [Start, End) the lint covers.
	Span document.Span

	// Message is the human-readable description of the issue.
	Message string

	// Suggestions are candidate replacements for Span, best first.
	Suggestions []string
}

// HasSuggestions returns true if the lint carries at least one replacement.
func (l *Lint) HasSuggestions() bool {
	return len(l.Suggestions) > 0
}

// Edit returns the text edit that applies suggestion i.
func (l *Lint) Edit(i int) (fix.TextEdit, bool) {
	if i < 0 || i >= len(l.Suggestions) {
		return fix.TextEdit{}, false
	}
	return fix.TextEdit{
		StartOffset: l.Span.Start,
		EndOffset:   l.Span.End,
		NewText:     l.Suggestions[i],
	}, true
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "GL001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Kind returns the kind of lint the rule produces.
	Kind() Kind

	// DefaultEnabled returns whether the rule is part of the curated set.
	DefaultEnabled() bool

	// Tags returns categorization tags for this rule.
	Tags() []string

	// Apply executes the rule against the given context and returns lints.
	//
	// Rules must:
	//   - Return a lint for each violation found, in any order.
	//   - Keep every span inside the document.
	//   - Not modify the document or dictionary.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Lint, error)
}
