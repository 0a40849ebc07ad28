package binding

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them through errors.Is.
var (
	// ErrInvalidInput covers nil or released handles and text that is not
	// valid UTF-8.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange is returned for token or suggestion indices outside
	// [0, count).
	ErrOutOfRange = errors.New("index out of range")

	// ErrAllocation is returned when the engine cannot build a requested
	// object.
	ErrAllocation = errors.New("allocation failed")
)

// Error is a tagged error naming the failed operation.
type Error struct {
	// Op is the operation that failed, e.g. "TokenText".
	Op string

	// Kind is one of ErrInvalidInput, ErrOutOfRange or ErrAllocation.
	Kind error

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Is reports whether target is the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(op string, err error) error {
	return &Error{Op: op, Kind: ErrInvalidInput, Err: err}
}

func outOfRange(op string, index, count int) error {
	return &Error{Op: op, Kind: ErrOutOfRange, Err: fmt.Errorf("index %d not in [0, %d)", index, count)}
}

var (
	errReleased = errors.New("handle released")
	errNil      = errors.New("nil handle")
)
