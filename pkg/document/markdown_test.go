package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gramlint/pkg/document"
)

func unlintableTexts(t *testing.T, doc *document.Document) []string {
	t.Helper()

	var texts []string
	for _, tok := range doc.Tokens() {
		if tok.Kind == document.TokUnlintable {
			texts = append(texts, doc.SpanText(tok.Span))
		}
	}
	return texts
}

func TestNewMarkdown_CodeSpan(t *testing.T) {
	t.Parallel()

	text := "Run `go tset` now."
	doc, err := document.NewMarkdown(text)
	require.NoError(t, err)

	assert.True(t, doc.IsMarkdown())
	assert.Equal(t, text, doc.Text())
	assert.Equal(t, []string{"go tset"}, unlintableTexts(t, doc))
	assert.True(t, document.ValidateTokens(doc.Tokens(), len(text)))
}

func TestNewMarkdown_FencedCode(t *testing.T) {
	t.Parallel()

	text := "Intro text.\n\n```golang\nfmt.Printn(x)\n```\n\nOutro.\n"
	doc, err := document.NewMarkdown(text)
	require.NoError(t, err)

	texts := unlintableTexts(t, doc)
	require.Len(t, texts, 2)
	assert.Equal(t, "golang", texts[0])
	assert.Equal(t, "fmt.Printn(x)\n", texts[1])
	assert.True(t, document.ValidateTokens(doc.Tokens(), len(text)))
}

func TestNewMarkdown_RawHTML(t *testing.T) {
	t.Parallel()

	text := "Some <span class=\"x\">inline</span> html."
	doc, err := document.NewMarkdown(text)
	require.NoError(t, err)

	texts := unlintableTexts(t, doc)
	assert.Contains(t, texts, "<span class=\"x\">")
	assert.Contains(t, texts, "</span>")
	assert.True(t, document.ValidateTokens(doc.Tokens(), len(text)))
}

func TestNewMarkdown_PlainProseMatchesPlainTokens(t *testing.T) {
	t.Parallel()

	text := "Nothing special here, just words."
	md, err := document.NewMarkdown(text)
	require.NoError(t, err)
	plain, err := document.New(text)
	require.NoError(t, err)

	assert.Equal(t, plain.Tokens(), md.Tokens())
}

func TestNewMarkdown_Empty(t *testing.T) {
	t.Parallel()

	doc, err := document.NewMarkdown("")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.TokenCount())
}

func TestNewMarkdown_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := document.NewMarkdown("\xc3\x28")
	require.ErrorIs(t, err, document.ErrInvalidText)
}
