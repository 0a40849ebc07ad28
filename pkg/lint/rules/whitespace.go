package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// MultipleSpacesRule flags runs of spaces between words.
type MultipleSpacesRule struct {
	lint.BaseRule
}

// NewMultipleSpacesRule creates a new multiple spaces rule.
func NewMultipleSpacesRule() *MultipleSpacesRule {
	return &MultipleSpacesRule{
		BaseRule: lint.NewBaseRule(
			"GL007",
			"multiple-spaces",
			"Words should be separated by a single space",
			lint.KindStyle,
			[]string{"whitespace"},
		),
	}
}

// Apply flags space runs longer than one, ignoring indentation and
// trailing whitespace.
func (r *MultipleSpacesRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for i, tok := range tokens {
		if tok.Kind != document.TokSpace || startsLine(tokens, i) || endsLine(tokens, i) {
			continue
		}

		text := ctx.Text(tok)
		if len(text) < 2 || strings.Trim(text, " ") != "" {
			continue
		}

		lints = append(lints, r.NewLint(tok.Span.Start, tok.Span.End,
			fmt.Sprintf("There are %d spaces where there should be only one.", len(text))).
			WithSuggestion(" ").
			Build())
	}

	return lints, nil
}
