package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry indexes rules by ID, name and alias. Keys are matched without
// regard to case or surrounding space, so a hand-written "gl001" or
// "Spell-Check" finds the same rule as "GL001".
type Registry struct {
	mu      sync.RWMutex
	rules   map[string]Rule   // folded ID -> rule
	names   map[string]string // folded name -> folded ID
	aliases map[string]string // folded alias -> folded ID
}

// keyKind selects which indexes a lookup consults, in ID, name, alias order.
type keyKind uint8

const (
	byID keyKind = 1 << iota
	byName
	byAlias
)

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		names:   make(map[string]string),
		aliases: make(map[string]string),
	}
}

func foldKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Register adds rule, replacing any rule with the same ID. The replaced
// rule's name stops resolving unless the new rule reuses it.
func (r *Registry) Register(rule Rule) {
	id := foldKey(rule.ID())

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[id]; ok {
		if name := foldKey(old.Name()); r.names[name] == id {
			delete(r.names, name)
		}
	}
	r.rules[id] = rule
	r.names[foldKey(rule.Name())] = id
}

// RegisterAlias maps a short name such as "spelling" to a rule ID. The alias
// resolves only while a rule with that ID is registered.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[foldKey(alias)] = foldKey(ruleID)
}

func (r *Registry) lookup(key string, kinds keyKind) (Rule, bool) {
	k := foldKey(key)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if kinds&byID != 0 {
		if rule, ok := r.rules[k]; ok {
			return rule, true
		}
	}
	if kinds&byName != 0 {
		if id, ok := r.names[k]; ok {
			return r.rules[id], true
		}
	}
	if kinds&byAlias != 0 {
		if id, ok := r.aliases[k]; ok {
			rule, found := r.rules[id]
			return rule, found
		}
	}
	return nil, false
}

// Get finds a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	return r.lookup(key, byID|byName)
}

// GetByID finds a rule by ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	return r.lookup(id, byID)
}

// GetByName finds a rule by name only.
func (r *Registry) GetByName(name string) (Rule, bool) {
	return r.lookup(name, byName)
}

// Resolve finds a rule by ID, name or alias and returns its canonical ID.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	rule, ok := r.lookup(key, byID|byName|byAlias)
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	result := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		result = append(result, rule)
	}
	r.mu.RUnlock()

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return result
}

// IDs returns every registered rule ID in order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry holds the built-in rules. The rules package fills it
// during init.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
