package rules

import (
	"strings"

	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// SpaceBeforePunctuationRule flags whitespace between a word and the
// punctuation that should follow it directly.
type SpaceBeforePunctuationRule struct {
	lint.BaseRule
}

// NewSpaceBeforePunctuationRule creates a new space-before-punctuation rule.
func NewSpaceBeforePunctuationRule() *SpaceBeforePunctuationRule {
	return &SpaceBeforePunctuationRule{
		BaseRule: lint.NewBaseRule(
			"GL002",
			"space-before-punctuation",
			"Punctuation should follow the preceding word without a space",
			lint.KindPunctuation,
			[]string{"punctuation", "whitespace"},
		),
	}
}

// Apply flags space tokens followed by closing punctuation.
func (r *SpaceBeforePunctuationRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for i, tok := range tokens {
		if tok.Kind != document.TokSpace || startsLine(tokens, i) || endsLine(tokens, i) {
			continue
		}
		next := tokens[i+1]
		if next.Kind != document.TokPunctuation || !strings.Contains(",.;:!?", ctx.Text(next)) {
			continue
		}
		prev := tokens[i-1]
		if prev.Kind != document.TokWord && prev.Kind != document.TokNumber {
			continue
		}

		lints = append(lints, r.NewLint(tok.Span.Start, tok.Span.End,
			"Remove the space before this punctuation.").
			WithSuggestion("").
			Build())
	}

	return lints, nil
}

// MissingSpaceAfterCommaRule flags commas and semicolons glued to the
// next word.
type MissingSpaceAfterCommaRule struct {
	lint.BaseRule
}

// NewMissingSpaceAfterCommaRule creates a new missing-space-after-comma rule.
func NewMissingSpaceAfterCommaRule() *MissingSpaceAfterCommaRule {
	return &MissingSpaceAfterCommaRule{
		BaseRule: lint.NewBaseRule(
			"GL003",
			"missing-space-after-comma",
			"Commas and semicolons should be followed by a space",
			lint.KindPunctuation,
			[]string{"punctuation", "whitespace"},
		),
	}
}

// Apply flags separators directly followed by a word.
func (r *MissingSpaceAfterCommaRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for i, tok := range tokens {
		if tok.Kind != document.TokPunctuation || i+1 >= len(tokens) {
			continue
		}
		if tokens[i+1].Kind != document.TokWord {
			continue
		}

		text := ctx.Text(tok)
		var message string
		switch text {
		case ",":
			message = "Add a space after this comma."
		case ";":
			message = "Add a space after this semicolon."
		default:
			continue
		}

		lints = append(lints, r.NewLint(tok.Span.Start, tok.Span.End, message).
			WithSuggestion(text+" ").
			Build())
	}

	return lints, nil
}
