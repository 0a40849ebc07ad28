package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/gramlint/pkg/document"
)

// containsDigit reports whether s has any decimal digit.
func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// isAcronym reports whether s is at least two letters, all upper case.
func isAcronym(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 1
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// matchCase applies the casing pattern of original to a lower-case word.
func matchCase(original, word string) string {
	switch {
	case isAcronym(original):
		return strings.ToUpper(word)
	case startsUpper(original):
		return capitalize(word)
	default:
		return word
	}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// hasInnerUpper reports whether any rune after the first is upper case,
// as in "iPhone" or "eBay".
func hasInnerUpper(s string) bool {
	_, size := utf8.DecodeRuneInString(s)
	return strings.IndexFunc(s[size:], unicode.IsUpper) >= 0
}

// startsLine reports whether tokens[i] is the first token on its line.
func startsLine(tokens []document.Token, i int) bool {
	return i == 0 || tokens[i-1].Kind == document.TokNewline
}

// endsLine reports whether tokens[i] is the last token on its line.
func endsLine(tokens []document.Token, i int) bool {
	return i == len(tokens)-1 || tokens[i+1].Kind == document.TokNewline
}
