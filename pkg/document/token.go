package document

// TokenKind classifies a token in the source text.
type TokenKind uint8

// Token kinds cover every byte in the source.
const (
	TokWord TokenKind = iota
	TokNumber
	TokSpace
	TokNewline
	TokPunctuation
	TokUnlintable // code, raw HTML and other Markdown regions rules must skip
	TokOther
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokWord:        "Word",
	TokNumber:      "Number",
	TokSpace:       "Space",
	TokNewline:     "Newline",
	TokPunctuation: "Punctuation",
	TokUnlintable:  "Unlintable",
	TokOther:       "Other",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// Span is a half-open byte range [Start, End) into a document's source.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the substring of source covered by the span, or "" when the
// span does not fit.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}

// Token is a classified span of the source.
// Tokens of a document are contiguous and non-overlapping, covering [0, len(source)).
type Token struct {
	Kind TokenKind
	Span Span
}

// IsWord reports whether the token is a word.
func (t Token) IsWord() bool {
	return t.Kind == TokWord
}

// IsWhitespace reports whether the token is a space or a newline.
func (t Token) IsWhitespace() bool {
	return t.Kind == TokSpace || t.Kind == TokNewline
}

// ValidateTokens checks that tokens are contiguous, non-overlapping and cover
// [0, contentLen).
func ValidateTokens(tokens []Token, contentLen int) bool {
	if len(tokens) == 0 {
		return contentLen == 0
	}
	if tokens[0].Span.Start != 0 || tokens[len(tokens)-1].Span.End != contentLen {
		return false
	}
	for i, tok := range tokens {
		if tok.Span.End <= tok.Span.Start {
			return false
		}
		if i > 0 && tok.Span.Start != tokens[i-1].Span.End {
			return false
		}
	}
	return true
}
