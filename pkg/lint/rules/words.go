package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// RepeatedWordsRule flags a word immediately repeated, as in "the the".
type RepeatedWordsRule struct {
	lint.BaseRule
}

// NewRepeatedWordsRule creates a new repeated words rule.
func NewRepeatedWordsRule() *RepeatedWordsRule {
	return &RepeatedWordsRule{
		BaseRule: lint.NewBaseRule(
			"GL004",
			"repeated-words",
			"Words should not be repeated back to back",
			lint.KindRepetition,
			[]string{"words"},
		),
	}
}

// Apply flags word, space, same word. A longer run such as "the the the"
// is reported once, spanning the whole run.
//
// Options:
//   - allow: words that may legitimately repeat (default "had", "that")
func (r *RepeatedWordsRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	allow := ctx.OptionStringSlice("allow", []string{"had", "that"})
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for i := 0; i+2 < len(tokens); i++ {
		first, gap, second := tokens[i], tokens[i+1], tokens[i+2]
		if first.Kind != document.TokWord || gap.Kind != document.TokSpace || second.Kind != document.TokWord {
			continue
		}

		word := ctx.Text(first)
		if !strings.EqualFold(word, ctx.Text(second)) {
			continue
		}
		if slices.ContainsFunc(allow, func(s string) bool { return strings.EqualFold(s, word) }) {
			continue
		}

		last := i + 2
		for last+2 < len(tokens) &&
			tokens[last+1].Kind == document.TokSpace &&
			tokens[last+2].Kind == document.TokWord &&
			strings.EqualFold(word, ctx.Text(tokens[last+2])) {
			last += 2
		}

		lints = append(lints, r.NewLint(first.Span.Start, tokens[last].Span.End,
			"Did you mean to repeat this word?").
			WithSuggestion(word).
			Build())
		i = last
	}

	return lints, nil
}

// ArticleRule checks "a" versus "an" before the following word.
type ArticleRule struct {
	lint.BaseRule
}

// NewArticleRule creates a new indefinite article rule.
func NewArticleRule() *ArticleRule {
	return &ArticleRule{
		BaseRule: lint.NewBaseRule(
			"GL005",
			"a-vs-an",
			`Use "an" before a vowel sound and "a" before a consonant sound`,
			lint.KindWordChoice,
			[]string{"words", "grammar"},
		),
	}
}

// Apply flags mismatched indefinite articles.
func (r *ArticleRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for i := 0; i+2 < len(tokens); i++ {
		article, gap, next := tokens[i], tokens[i+1], tokens[i+2]
		if article.Kind != document.TokWord || gap.Kind != document.TokSpace || next.Kind != document.TokWord {
			continue
		}

		text := ctx.Text(article)
		lower := strings.ToLower(text)
		if lower != "a" && lower != "an" {
			continue
		}

		word := ctx.Text(next)
		want := "a"
		if takesAn(word) {
			want = "an"
		}
		if lower == want {
			continue
		}

		lints = append(lints, r.NewLint(article.Span.Start, article.Span.End,
			fmt.Sprintf("Use %q before %q.", want, word)).
			WithSuggestion(matchArticleCase(text, want)).
			Build())
	}

	return lints, nil
}

// Prefixes whose pronunciation differs from their first letter.
//
//nolint:gochecknoglobals // Read-only lookup tables
var (
	silentH  = []string{"hour", "honest", "honor", "honour", "heir"}
	yooSound = []string{
		"unic", "unif", "unio", "uniq", "unit", "univ", "use", "usu", "usa", "uti",
		"uro", "eu", "ewe", "one", "once",
	}
)

// takesAn reports whether word starts with a vowel sound.
func takesAn(word string) bool {
	if isAcronym(word) {
		// Letter names: "an FBI agent", "a UN resolution".
		return strings.ContainsRune("AEFHILMNORSX", []rune(word)[0])
	}

	lower := strings.ToLower(word)
	if hasAnyPrefix(lower, silentH) {
		return true
	}
	if hasAnyPrefix(lower, yooSound) {
		return false
	}
	return lower != "" && strings.ContainsRune("aeiou", []rune(lower)[0])
}

func hasAnyPrefix(s string, prefixes []string) bool {
	return slices.ContainsFunc(prefixes, func(p string) bool { return strings.HasPrefix(s, p) })
}

func matchArticleCase(original, want string) string {
	if startsUpper(original) {
		return capitalize(want)
	}
	return want
}
