// Package binding is the handle layer over the analysis engine. Callers
// create a Document and a LintGroup, run Analyze to get a LintSet, walk its
// records in document order with Order, and Close every handle when done.
//
// Handles are safe for concurrent use. Close waits for in-flight calls on the
// same handle, is idempotent, and may be called on a nil handle. Every call
// on a released handle fails with ErrInvalidInput.
package binding

import (
	"errors"
	"sync"

	"github.com/yaklabco/gramlint/pkg/document"
)

// Document is an owned handle to a tokenized text.
type Document struct {
	mu  sync.RWMutex
	doc *document.Document
}

// NewDocument tokenizes text as plain prose.
func NewDocument(text string) (*Document, error) {
	return newDocument("NewDocument", text, document.New)
}

// NewMarkdownDocument tokenizes text as Markdown; code and raw HTML are
// marked unlintable.
func NewMarkdownDocument(text string) (*Document, error) {
	return newDocument("NewMarkdownDocument", text, document.NewMarkdown)
}

func newDocument(op, text string, parse func(string) (*document.Document, error)) (*Document, error) {
	doc, err := parse(text)
	if err != nil {
		if errors.Is(err, document.ErrInvalidText) {
			return nil, invalid(op, err)
		}
		return nil, &Error{Op: op, Kind: ErrAllocation, Err: err}
	}
	return &Document{doc: doc}, nil
}

// Close releases the document.
func (d *Document) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = nil
	return nil
}

// acquire read-locks the handle and returns the live document. The caller
// must call release when err is nil.
func (d *Document) acquire(op string) (*document.Document, func(), error) {
	if d == nil {
		return nil, nil, invalid(op, errNil)
	}
	d.mu.RLock()
	if d.doc == nil {
		d.mu.RUnlock()
		return nil, nil, invalid(op, errReleased)
	}
	return d.doc, d.mu.RUnlock, nil
}

// Text returns the source text. An empty document returns "".
func (d *Document) Text() (string, error) {
	doc, release, err := d.acquire("Text")
	if err != nil {
		return "", err
	}
	defer release()
	return doc.Text(), nil
}

// TokenCount returns the number of tokens; at least one for non-empty text.
func (d *Document) TokenCount() (int, error) {
	doc, release, err := d.acquire("TokenCount")
	if err != nil {
		return 0, err
	}
	defer release()
	return doc.TokenCount(), nil
}

// TokenText returns the text of token i.
func (d *Document) TokenText(i int) (string, error) {
	doc, release, err := d.acquire("TokenText")
	if err != nil {
		return "", err
	}
	defer release()

	text, ok := doc.TokenText(i)
	if !ok {
		return "", outOfRange("TokenText", i, doc.TokenCount())
	}
	return text, nil
}

// Token returns token i with its kind and byte span.
func (d *Document) Token(i int) (document.Token, error) {
	doc, release, err := d.acquire("Token")
	if err != nil {
		return document.Token{}, err
	}
	defer release()

	tok, ok := doc.Token(i)
	if !ok {
		return document.Token{}, outOfRange("Token", i, doc.TokenCount())
	}
	return tok, nil
}

// IsMarkdown reports whether the document was parsed as Markdown.
func (d *Document) IsMarkdown() (bool, error) {
	doc, release, err := d.acquire("IsMarkdown")
	if err != nil {
		return false, err
	}
	defer release()
	return doc.IsMarkdown(), nil
}
