// Package fix turns lint suggestions into text edits and applies them.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a text with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsDeletion reports whether the edit removes text without inserting any.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}
