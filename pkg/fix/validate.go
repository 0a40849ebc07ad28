package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the text.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ValidateEdits checks every edit against a text of length contentLen and
// returns the first problem found.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start then end offset. Equal edits keep their
// relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// FilterConflicts splits sorted edits into the ones that can be applied
// together and the ones that overlap an earlier accepted edit. Earlier edits
// win. Two insertions at the same offset conflict.
func FilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted = make([]TextEdit, 0, len(edits))
	accepted = append(accepted, edits[0])
	last := edits[0]

	for _, edit := range edits[1:] {
		overlaps := edit.StartOffset < last.EndOffset ||
			(edit.StartOffset == last.StartOffset && last.StartOffset == last.EndOffset)
		if overlaps {
			skipped = append(skipped, edit)
			continue
		}
		accepted = append(accepted, edit)
		last = edit
	}

	return accepted, skipped
}

// Prepare validates, sorts and filters edits for ApplyEdits.
// Only validation problems are returned as errors; conflicts are reported
// through skipped.
func Prepare(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	accepted, skipped = FilterConflicts(sorted)
	return accepted, skipped, nil
}
