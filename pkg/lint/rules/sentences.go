package rules

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gramlint/pkg/document"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// DefaultMaxWords is the default sentence length limit.
const DefaultMaxWords = 40

// SentenceCapitalizationRule flags sentences that start in lower case.
type SentenceCapitalizationRule struct {
	lint.BaseRule
}

// NewSentenceCapitalizationRule creates a new sentence capitalization rule.
func NewSentenceCapitalizationRule() *SentenceCapitalizationRule {
	return &SentenceCapitalizationRule{
		BaseRule: lint.NewBaseRule(
			"GL006",
			"sentence-capitalization",
			"Sentences should start with a capital letter",
			lint.KindCapitalization,
			[]string{"sentences", "capitalization"},
		),
	}
}

// Apply checks the word after every sentence terminator. Unicode sentence
// segmentation does not break before a lower-case word, so boundaries are
// found here from terminal punctuation followed by whitespace. Sentences
// that open with a number, code, or a word with inner capitals ("iPhone")
// are skipped.
func (r *SentenceCapitalizationRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	tokens := ctx.Tokens()

	var lints []lint.Lint
	atStart, pending := true, false
	for i, tok := range tokens {
		switch tok.Kind {
		case document.TokWord:
			word := ctx.Text(tok)
			if atStart && startsLower(word) && !hasInnerUpper(word) {
				lints = append(lints, r.NewLint(tok.Span.Start, tok.Span.End,
					"This sentence does not start with a capital letter.").
					WithSuggestion(capitalize(word)).
					Build())
			}
			atStart, pending = false, false
		case document.TokPunctuation:
			if isTerminator(ctx.Text(tok)) && !afterAbbreviation(ctx, tokens, i) {
				pending = true
			}
		case document.TokSpace, document.TokNewline:
			if pending {
				atStart, pending = true, false
			}
		default:
			atStart, pending = false, false
		}
	}

	return lints, nil
}

//nolint:gochecknoglobals // Read-only lookup table
var abbreviations = []string{
	"mr", "mrs", "ms", "dr", "st", "vs", "etc", "e.g", "i.e", "eg", "ie", "jr", "sr", "inc", "ltd", "co", "approx",
}

func isTerminator(s string) bool {
	return s == "." || s == "!" || s == "?"
}

// afterAbbreviation reports whether the period at tokens[i] closes an
// abbreviation such as "Dr." or the "g." of "e.g.".
func afterAbbreviation(ctx *lint.RuleContext, tokens []document.Token, i int) bool {
	if ctx.Text(tokens[i]) != "." || i == 0 || tokens[i-1].Kind != document.TokWord {
		return false
	}
	prev := ctx.Text(tokens[i-1])
	if utf8.RuneCountInString(prev) == 1 {
		return true
	}
	return slices.Contains(abbreviations, strings.ToLower(prev))
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}

// LongSentencesRule flags sentences with too many words.
type LongSentencesRule struct {
	lint.BaseRule
}

// NewLongSentencesRule creates a new long sentences rule.
func NewLongSentencesRule() *LongSentencesRule {
	return &LongSentencesRule{
		BaseRule: lint.NewBaseRule(
			"GL008",
			"long-sentences",
			"Sentences should not exceed the configured word count",
			lint.KindStyle,
			[]string{"sentences", "readability"},
		),
	}
}

// DefaultEnabled keeps the rule out of the curated set.
func (r *LongSentencesRule) DefaultEnabled() bool {
	return false
}

// Apply counts words per sentence.
//
// Options:
//   - max_words: longest allowed sentence (default 40)
func (r *LongSentencesRule) Apply(ctx *lint.RuleContext) ([]lint.Lint, error) {
	maxWords := ctx.OptionInt("max_words", DefaultMaxWords)
	if maxWords <= 0 {
		return nil, nil
	}
	tokens := ctx.Tokens()

	var lints []lint.Lint
	for _, sentence := range ctx.Document.Sentences() {
		words := 0
		last := -1
		for i := sentence.First; i <= sentence.Last; i++ {
			switch tokens[i].Kind {
			case document.TokWord, document.TokNumber:
				words++
				last = i
			case document.TokSpace, document.TokNewline:
			default:
				last = i
			}
		}
		if words <= maxWords || last < 0 {
			continue
		}

		lints = append(lints, r.NewLint(tokens[sentence.First].Span.Start, tokens[last].Span.End,
			fmt.Sprintf("This sentence is %d words long; the limit is %d.", words, maxWords)).
			Build())
	}

	return lints, nil
}
