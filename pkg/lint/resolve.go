package lint

import (
	"slices"

	"github.com/yaklabco/gramlint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration, sorted by ID.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:    rule,
		Enabled: rule.DefaultEnabled(),
	}

	if cfg == nil {
		return rr
	}

	// Apply rule-specific config.
	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
	}

	// Explicit enable/disable lists come from the command line and win.
	if slices.ContainsFunc(cfg.EnableRules, matches(registry, rule)) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matches(registry, rule)) {
		rr.Enabled = false
	}

	return rr
}

// matches returns a predicate reporting whether a key names rule.
func matches(registry *Registry, rule Rule) func(string) bool {
	return func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	}
}
