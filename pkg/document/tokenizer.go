package document

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Tokenize splits text into tokens along Unicode word boundaries (UAX #29).
// Adjacent horizontal whitespace segments are merged into one space token.
// Text must be valid UTF-8.
func Tokenize(text string) []Token {
	return tokenizeAt(text, 0, nil)
}

// tokenizeAt appends the tokens of text to dst, shifting spans by base.
func tokenizeAt(text string, base int, dst []Token) []Token {
	state := -1
	offset := base
	rest := text

	for len(rest) > 0 {
		var segment string
		segment, rest, state = uniseg.FirstWordInString(rest, state)

		kind := classify(segment)
		span := Span{Start: offset, End: offset + len(segment)}
		offset = span.End

		if kind == TokSpace && len(dst) > 0 && dst[len(dst)-1].Kind == TokSpace {
			dst[len(dst)-1].Span.End = span.End
			continue
		}
		dst = append(dst, Token{Kind: kind, Span: span})
	}

	return dst
}

func classify(segment string) TokenKind {
	first, _ := utf8.DecodeRuneInString(segment)

	switch {
	case first == '\n' || first == '\r' || first == '\u2028' || first == '\u2029':
		return TokNewline
	case unicode.IsSpace(first):
		return TokSpace
	case unicode.IsLetter(first):
		return TokWord
	case unicode.IsDigit(first):
		if isNumber(segment) {
			return TokNumber
		}
		return TokWord
	case unicode.IsPunct(first) || unicode.IsSymbol(first):
		return TokPunctuation
	default:
		return TokOther
	}
}

// isNumber reports whether segment is made of digits and numeric separators only.
func isNumber(segment string) bool {
	for _, r := range segment {
		if !unicode.IsDigit(r) && r != '.' && r != ',' && r != '_' {
			return false
		}
	}
	return true
}
