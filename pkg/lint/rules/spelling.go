package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// DefaultMaxSuggestions is the number of spelling candidates offered.
const DefaultMaxSuggestions = 3

// SpellCheckRule flags words missing from the dictionary.
type SpellCheckRule struct {
	lint.BaseRule
}

// NewSpellCheckRule creates a new spell check rule.
func NewSpellCheckRule() *SpellCheckRule {
	return &SpellCheckRule{
		BaseRule: lint.NewBaseRule(
			"GL001",
			"spell-check",
			"Words should be spelled correctly",
			lint.KindSpelling,
			[]string{"spelling"},
		),
	}
}

// Apply flags unknown words and suggests close dictionary words.
//
// Options:
//   - max_suggestions: number of candidates per word (default 3)
//   - ignore: extra words to accept
func (r *SpellCheckRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	if ctx.Dictionary == nil {
		return nil, nil
	}

	limit := ctx.OptionInt("max_suggestions", DefaultMaxSuggestions)
	ignore := ctx.OptionStringSlice("ignore", nil)

	var lints []lint.Lint
	for _, tok := range ctx.Tokens() {
		if tok.Kind != document.TokWord {
			continue
		}
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		word := ctx.Text(tok)
		if containsDigit(word) || isAcronym(word) || ctx.Dictionary.Contains(word) {
			continue
		}
		if slices.ContainsFunc(ignore, func(s string) bool { return strings.EqualFold(s, word) }) {
			continue
		}

		builder := r.NewLint(tok.Span.Start, tok.Span.End,
			fmt.Sprintf("Did you mean to spell %q this way?", word))
		for _, candidate := range ctx.Dictionary.Suggest(word, limit) {
			builder.WithSuggestion(matchCase(word, candidate))
		}
		lints = append(lints, builder.Build())
	}

	return lints, nil
}
