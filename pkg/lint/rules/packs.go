package rules

import (
	"fmt"
	"maps"

	"github.com/yaklabco/gramlint/pkg/config"
)

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .gramlint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "curated", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// CuratedPack returns the default rule set.
func CuratedPack() Pack {
	return Pack{
		Name:        "curated",
		Description: "Default checks: spelling, punctuation spacing, repeated words, articles, capitalization",
		Rules: map[string]config.RuleConfig{
			"GL001": enabled(nil), // spell-check
			"GL002": enabled(nil), // space-before-punctuation
			"GL003": enabled(nil), // missing-space-after-comma
			"GL004": enabled(nil), // repeated-words
			"GL005": enabled(nil), // a-vs-an
			"GL006": enabled(nil), // sentence-capitalization
			"GL007": enabled(nil), // multiple-spaces
			"GL008": disabled(),   // long-sentences
		},
	}
}

// StrictPack returns every rule, with a tighter sentence length limit.
func StrictPack() Pack {
	pack := CuratedPack()
	pack.Name = "strict"
	pack.Description = "Strict pack: every curated check plus sentences of at most 30 words"
	pack.Rules["GL008"] = enabled(map[string]any{"max_words": 30}) // long-sentences
	return pack
}

// SpellingPack returns a pack that only checks spelling.
func SpellingPack() Pack {
	return Pack{
		Name:        "spelling",
		Description: "Spelling only: minimal noise for drafts",
		Rules: map[string]config.RuleConfig{
			"GL001": enabled(nil), // spell-check
			"GL002": disabled(),   // space-before-punctuation
			"GL003": disabled(),   // missing-space-after-comma
			"GL004": disabled(),   // repeated-words
			"GL005": disabled(),   // a-vs-an
			"GL006": disabled(),   // sentence-capitalization
			"GL007": disabled(),   // multiple-spaces
			"GL008": disabled(),   // long-sentences
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CuratedPack(),
		StrictPack(),
		SpellingPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// ApplyPack lays the named pack beneath cfg. Settings already present in
// cfg win; the pack fills in the enabled flag and options cfg leaves unset.
func ApplyPack(cfg *config.Config, name string) error {
	pack := PackByName(name)
	if pack == nil {
		return fmt.Errorf("unknown pack %q (available: %v)", name, PackNames())
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(pack.Rules))
	}
	for id, rc := range pack.Rules {
		existing, ok := cfg.Rules[id]
		if !ok {
			cfg.Rules[id] = rc
			continue
		}
		if existing.Enabled == nil {
			existing.Enabled = rc.Enabled
		}
		if len(rc.Options) > 0 {
			options := maps.Clone(rc.Options)
			maps.Copy(options, existing.Options)
			existing.Options = options
		}
		cfg.Rules[id] = existing
	}
	return nil
}

// enabled creates a RuleConfig with the rule enabled and the given options.
func enabled(options map[string]any) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled: &on,
		Options: maps.Clone(options),
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
