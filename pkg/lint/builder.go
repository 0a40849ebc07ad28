package lint

import "github.com/yaklabco/gramlint/pkg/document"

// LintBuilder helps construct Lint values.
type LintBuilder struct {
	lint Lint
}

// NewLint starts building a lint for the given rule over [start, end).
func NewLint(ruleID string, start, end int, message string) *LintBuilder {
	return &LintBuilder{
		lint: Lint{
			RuleID:  ruleID,
			Span:    document.Span{Start: start, End: end},
			Message: message,
		},
	}
}

// WithRuleName sets the human-readable rule name.
func (b *LintBuilder) WithRuleName(name string) *LintBuilder {
	b.lint.RuleName = name
	return b
}

// WithKind sets the lint kind.
func (b *LintBuilder) WithKind(kind Kind) *LintBuilder {
	b.lint.Kind = kind
	return b
}

// WithSuggestion appends replacement candidates in order.
func (b *LintBuilder) WithSuggestion(texts ...string) *LintBuilder {
	b.lint.Suggestions = append(b.lint.Suggestions, texts...)
	return b
}

// Build returns the constructed Lint.
func (b *LintBuilder) Build() Lint {
	return b.lint
}
