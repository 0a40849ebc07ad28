// Package document holds immutable, tokenized text documents.
package document

import (
	"errors"
	"slices"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ErrInvalidText is returned when the input is not valid UTF-8.
var ErrInvalidText = errors.New("text is not valid UTF-8")

// Document is a parsed source text and its token stream.
// A Document never changes after construction and is safe for concurrent reads.
type Document struct {
	source   string
	tokens   []Token
	markdown bool
}

// New tokenizes plain text. Empty text yields a document with no tokens.
func New(text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	return &Document{
		source: text,
		tokens: Tokenize(text),
	}, nil
}

// NewMarkdown tokenizes Markdown text. Code blocks, code spans, fenced code
// info strings and raw HTML become single unlintable tokens.
func NewMarkdown(text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}

	regions := unlintableRegions([]byte(text))

	var tokens []Token
	cursor := 0
	for _, region := range regions {
		if region.Start > cursor {
			tokens = tokenizeAt(text[cursor:region.Start], cursor, tokens)
		}
		tokens = append(tokens, Token{Kind: TokUnlintable, Span: region})
		cursor = region.End
	}
	if cursor < len(text) {
		tokens = tokenizeAt(text[cursor:], cursor, tokens)
	}

	return &Document{
		source:   text,
		tokens:   tokens,
		markdown: true,
	}, nil
}

// Text returns the source text.
func (d *Document) Text() string {
	return d.source
}

// Len returns the length of the source in bytes.
func (d *Document) Len() int {
	return len(d.source)
}

// IsMarkdown reports whether the document was parsed as Markdown.
func (d *Document) IsMarkdown() bool {
	return d.markdown
}

// TokenCount returns the number of tokens.
func (d *Document) TokenCount() int {
	return len(d.tokens)
}

// Token returns the token at index, or false when index is out of range.
func (d *Document) Token(index int) (Token, bool) {
	if index < 0 || index >= len(d.tokens) {
		return Token{}, false
	}
	return d.tokens[index], true
}

// TokenText returns the source text of the token at index.
func (d *Document) TokenText(index int) (string, bool) {
	tok, ok := d.Token(index)
	if !ok {
		return "", false
	}
	return tok.Span.Text(d.source), true
}

// Tokens returns a copy of the token stream.
func (d *Document) Tokens() []Token {
	return slices.Clone(d.tokens)
}

// SpanText returns the source text covered by span.
func (d *Document) SpanText(span Span) string {
	return span.Text(d.source)
}

// Sentence is a run of tokens between sentence boundaries.
type Sentence struct {
	// Span covers the sentence including trailing whitespace.
	Span Span

	// First and Last are the inclusive token indices of the sentence.
	First int
	Last  int
}

// Sentences splits the document along Unicode sentence boundaries (UAX #29).
// Sentences that contain no tokens are skipped.
func (d *Document) Sentences() []Sentence {
	var sentences []Sentence

	state := -1
	offset := 0
	next := 0
	rest := d.source

	for len(rest) > 0 {
		var segment string
		segment, rest, state = uniseg.FirstSentenceInString(rest, state)
		span := Span{Start: offset, End: offset + len(segment)}
		offset = span.End

		first := next
		for next < len(d.tokens) && d.tokens[next].Span.Start < span.End {
			next++
		}
		if next == first {
			continue
		}

		sentences = append(sentences, Sentence{Span: span, First: first, Last: next - 1})
	}

	return sentences
}
