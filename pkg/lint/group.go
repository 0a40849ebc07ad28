package lint

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/dictionary"
	"github.com/yaklabco/gramlint/pkg/document"
)

// CuratedGroupName is the name of the default rule set.
const CuratedGroupName = "curated"

var (
	// ErrNoRules is returned when a group would contain no enabled rules.
	ErrNoRules = errors.New("no enabled rules")

	// ErrNilDocument is returned when Lint is called without a document.
	ErrNilDocument = errors.New("nil document")
)

// Group is a named, fixed set of enabled rules applied together.
// A Group is read-only after construction and may lint many documents
// concurrently.
type Group struct {
	name    string
	rules   []ResolvedRule
	cfg     *config.Config
	dict    *dictionary.Dictionary
	metrics *Metrics
	jobs    int
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithDictionary replaces the curated dictionary.
func WithDictionary(dict *dictionary.Dictionary) GroupOption {
	return func(g *Group) {
		if dict != nil {
			g.dict = dict
		}
	}
}

// WithMetrics records pass statistics into m.
func WithMetrics(m *Metrics) GroupOption {
	return func(g *Group) {
		g.metrics = m
	}
}

// WithJobs limits how many rules run at once. Zero or less means no limit.
func WithJobs(n int) GroupOption {
	return func(g *Group) {
		g.jobs = n
	}
}

// NewGroup resolves the rules of registry against cfg. A nil cfg uses the
// defaults. Extra words from cfg.Dictionary are added to the dictionary.
func NewGroup(name string, registry *Registry, cfg *config.Config, opts ...GroupOption) (*Group, error) {
	if registry == nil {
		return nil, fmt.Errorf("group %q: %w", name, ErrNoRules)
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	group := &Group{
		name: name,
		cfg:  cfg,
		dict: dictionary.Curated(),
		jobs: cfg.Jobs,
	}
	for _, opt := range opts {
		opt(group)
	}
	group.dict = group.dict.With(cfg.Dictionary)

	group.rules = ResolveRules(registry, cfg)
	if len(group.rules) == 0 {
		return nil, fmt.Errorf("group %q: %w", name, ErrNoRules)
	}

	return group, nil
}

// NewCuratedGroup builds the default rule set from DefaultRegistry.
func NewCuratedGroup(opts ...GroupOption) (*Group, error) {
	return NewGroup(CuratedGroupName, DefaultRegistry, nil, opts...)
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Rules returns the enabled rules in ID order.
func (g *Group) Rules() []Rule {
	rules := make([]Rule, 0, len(g.rules))
	for _, rr := range g.rules {
		rules = append(rules, rr.Rule)
	}
	return rules
}

// Dictionary returns the word list used by the group.
func (g *Group) Dictionary() *dictionary.Dictionary {
	return g.dict
}

// Lint applies every rule of the group to doc. Rules run concurrently and
// the returned lints are in no particular order; use Ordered to sort them.
// An empty document yields no lints.
func (g *Group) Lint(ctx context.Context, doc *document.Document) ([]Lint, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	logger := logging.FromContext(ctx).With(
		logging.FieldPass, uuid.NewString(),
		logging.FieldGroup, g.name,
	)
	start := time.Now()

	lints, err := g.run(ctx, doc)
	elapsed := time.Since(start)
	if err != nil {
		g.metrics.observePass(g.name, StatusError, elapsed)
		logger.Debug("analysis failed", logging.FieldError, err)
		return nil, err
	}

	g.metrics.observePass(g.name, StatusOK, elapsed)
	logger.Debug("analysis finished",
		logging.FieldRules, len(g.rules),
		logging.FieldTokens, doc.TokenCount(),
		logging.FieldLints, len(lints),
		logging.FieldDuration, elapsed,
	)

	return lints, nil
}

func (g *Group) run(ctx context.Context, doc *document.Document) ([]Lint, error) {
	if doc.TokenCount() == 0 {
		return nil, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if g.jobs > 0 {
		eg.SetLimit(g.jobs)
	}

	var (
		mu    sync.Mutex
		lints []Lint
	)

	for _, rr := range g.rules {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			rule := rr.Rule
			found, err := rule.Apply(NewRuleContext(egCtx, doc, g.dict, g.cfg, rr.Config))
			if err != nil {
				return fmt.Errorf("rule %s: %w", rule.ID(), err)
			}

			for i := range found {
				if err := complete(&found[i], rule, doc); err != nil {
					return err
				}
			}

			g.metrics.addLints(rule.ID(), len(found))

			mu.Lock()
			lints = append(lints, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return lints, nil
}

// complete fills rule attribution and checks the span against the document.
func complete(l *Lint, rule Rule, doc *document.Document) error {
	if l.RuleID == "" {
		l.RuleID = rule.ID()
	}
	if l.RuleName == "" {
		l.RuleName = rule.Name()
	}
	if l.Kind == "" {
		l.Kind = rule.Kind()
	}
	if l.Span.Start < 0 || l.Span.End < l.Span.Start || l.Span.End > doc.Len() {
		return fmt.Errorf("rule %s: span [%d, %d) outside document of %d bytes",
			rule.ID(), l.Span.Start, l.Span.End, doc.Len())
	}
	return nil
}
