package binding

import (
	"context"
	"slices"
	"sync"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// LintSet owns the records of one analysis pass. Records come back in the
// order the engine produced them, which is unspecified; use Order or
// Ordered for document order.
type LintSet struct {
	mu      sync.RWMutex
	records []*Lint
	closed  bool
}

// Lint is one record of a LintSet. Its suggestions live as long as the
// record, and the record as long as its set.
type Lint struct {
	mu     sync.RWMutex
	lint   lint.Lint
	closed bool
}

// Analyze applies group to doc. Both handles stay read-locked for the
// duration, so a concurrent Close waits for the pass to finish.
//
// A failed pass is reported as ErrAllocation with the engine's error as the
// cause, so a cancelled ctx also matches context.Canceled (or
// context.DeadlineExceeded) through errors.Is.
func Analyze(ctx context.Context, doc *Document, group *LintGroup) (*LintSet, error) {
	const op = "Analyze"

	d, releaseDoc, err := doc.acquire(op)
	if err != nil {
		return nil, err
	}
	defer releaseDoc()

	g, releaseGroup, err := group.acquire(op)
	if err != nil {
		return nil, err
	}
	defer releaseGroup()

	if ctx == nil {
		ctx = context.Background()
	}

	lints, err := g.Lint(ctx, d)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrAllocation, Err: err}
	}

	set := &LintSet{}
	if len(lints) > 0 {
		set.records = make([]*Lint, len(lints))
		for i, l := range lints {
			set.records[i] = &Lint{lint: l}
		}
	}
	return set, nil
}

// Close releases the set and every record in it.
func (s *LintSet) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for _, rec := range s.records {
		rec.close()
	}
	s.records = nil
	s.closed = true
	return nil
}

func (s *LintSet) acquire(op string) (func(), error) {
	if s == nil {
		return nil, invalid(op, errNil)
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, invalid(op, errReleased)
	}
	return s.mu.RUnlock, nil
}

// Len returns the number of records.
func (s *LintSet) Len() (int, error) {
	release, err := s.acquire("Len")
	if err != nil {
		return 0, err
	}
	defer release()
	return len(s.records), nil
}

// Records returns the records in engine order. The slice is nil exactly
// when the set is empty; it is a copy, the records are shared.
func (s *LintSet) Records() ([]*Lint, error) {
	release, err := s.acquire("Records")
	if err != nil {
		return nil, err
	}
	defer release()
	return slices.Clone(s.records), nil
}

// Ordered returns the records sorted by start offset, stable on ties.
func (s *LintSet) Ordered() ([]*Lint, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	return Order(records), nil
}

// Order returns a new slice of records sorted ascending by start offset.
// Records with equal starts keep their input order and nil records sort
// first. Neither the input slice nor the records are modified.
func Order(records []*Lint) []*Lint {
	return lint.OrderByStart(records, (*Lint).start)
}

func (l *Lint) start() int {
	if l == nil {
		return -1
	}
	return l.lint.Span.Start
}

func (l *Lint) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *Lint) acquire(op string) (func(), error) {
	if l == nil {
		return nil, invalid(op, errNil)
	}
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return nil, invalid(op, errReleased)
	}
	return l.mu.RUnlock, nil
}

// Message returns the human-readable description.
func (l *Lint) Message() (string, error) {
	release, err := l.acquire("Message")
	if err != nil {
		return "", err
	}
	defer release()
	return l.lint.Message, nil
}

// Range returns the byte range [start, end) the record covers in the
// analyzed document.
func (l *Lint) Range() (start, end int, err error) {
	release, err := l.acquire("Range")
	if err != nil {
		return 0, 0, err
	}
	defer release()
	return l.lint.Span.Start, l.lint.Span.End, nil
}

// RuleID returns the identifier of the rule that produced the record.
func (l *Lint) RuleID() (string, error) {
	release, err := l.acquire("RuleID")
	if err != nil {
		return "", err
	}
	defer release()
	return l.lint.RuleID, nil
}

// RuleName returns the human-readable rule name.
func (l *Lint) RuleName() (string, error) {
	release, err := l.acquire("RuleName")
	if err != nil {
		return "", err
	}
	defer release()
	return l.lint.RuleName, nil
}

// Kind returns the lint category.
func (l *Lint) Kind() (lint.Kind, error) {
	release, err := l.acquire("Kind")
	if err != nil {
		return "", err
	}
	defer release()
	return l.lint.Kind, nil
}

// SuggestionCount returns the number of replacement candidates.
func (l *Lint) SuggestionCount() (int, error) {
	release, err := l.acquire("SuggestionCount")
	if err != nil {
		return 0, err
	}
	defer release()
	return len(l.lint.Suggestions), nil
}

// Suggestion returns replacement candidate i; best first. The empty string
// means "delete the range".
func (l *Lint) Suggestion(i int) (string, error) {
	release, err := l.acquire("Suggestion")
	if err != nil {
		return "", err
	}
	defer release()

	if i < 0 || i >= len(l.lint.Suggestions) {
		return "", outOfRange("Suggestion", i, len(l.lint.Suggestions))
	}
	return l.lint.Suggestions[i], nil
}

// Value returns a copy of the underlying lint.
func (l *Lint) Value() (lint.Lint, error) {
	release, err := l.acquire("Value")
	if err != nil {
		return lint.Lint{}, err
	}
	defer release()

	v := l.lint
	v.Suggestions = slices.Clone(v.Suggestions)
	return v, nil
}
