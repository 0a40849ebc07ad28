package binding

import (
	"errors"
	"sync"

	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/lint"

	// Registers the built-in rules with lint.DefaultRegistry.
	_ "github.com/yaklabco/gramlint/pkg/lint/rules"
)

// LintGroup is an owned handle to a fixed set of enabled rules. A group is
// read-only during analysis and may be shared by concurrent Analyze calls.
type LintGroup struct {
	mu    sync.RWMutex
	group *lint.Group
}

// NewDefaultLintGroup builds the curated rule set.
func NewDefaultLintGroup(opts ...lint.GroupOption) (*LintGroup, error) {
	group, err := lint.NewCuratedGroup(opts...)
	if err != nil {
		return nil, groupError("NewDefaultLintGroup", err)
	}
	return &LintGroup{group: group}, nil
}

// NewLintGroup builds a group from cfg: per-rule enable flags and options,
// CLI enable/disable lists and extra dictionary words. A nil cfg is the
// curated set.
func NewLintGroup(cfg *config.Config, opts ...lint.GroupOption) (*LintGroup, error) {
	group, err := lint.NewGroup(lint.CuratedGroupName, lint.DefaultRegistry, cfg, opts...)
	if err != nil {
		return nil, groupError("NewLintGroup", err)
	}
	return &LintGroup{group: group}, nil
}

func groupError(op string, err error) error {
	if errors.Is(err, lint.ErrNoRules) {
		return invalid(op, err)
	}
	return &Error{Op: op, Kind: ErrAllocation, Err: err}
}

// Close releases the group. Result sets produced by it stay valid.
func (g *LintGroup) Close() error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.group = nil
	return nil
}

func (g *LintGroup) acquire(op string) (*lint.Group, func(), error) {
	if g == nil {
		return nil, nil, invalid(op, errNil)
	}
	g.mu.RLock()
	if g.group == nil {
		g.mu.RUnlock()
		return nil, nil, invalid(op, errReleased)
	}
	return g.group, g.mu.RUnlock, nil
}

// Name returns the group name.
func (g *LintGroup) Name() (string, error) {
	group, release, err := g.acquire("Name")
	if err != nil {
		return "", err
	}
	defer release()
	return group.Name(), nil
}

// RuleIDs returns the IDs of the enabled rules in ID order.
func (g *LintGroup) RuleIDs() ([]string, error) {
	group, release, err := g.acquire("RuleIDs")
	if err != nil {
		return nil, err
	}
	defer release()

	rules := group.Rules()
	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID())
	}
	return ids, nil
}
