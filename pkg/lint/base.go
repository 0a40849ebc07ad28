package lint

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id   string   // Unique identifier (e.g., "GL001")
	name string   // Human-readable name
	desc string   // Detailed description
	kind Kind     // Lint kind
	tags []string // Categorization tags
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, kind Kind, tags []string) BaseRule {
	return BaseRule{
		id:   id,
		name: name,
		desc: desc,
		kind: kind,
		tags: tags,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Kind returns the kind of lint the rule produces.
func (r *BaseRule) Kind() Kind {
	return r.kind
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Apply must be overridden by concrete rule implementations.
// The default implementation returns no lints.
func (r *BaseRule) Apply(_ *RuleContext) ([]Lint, error) {
	return nil, nil
}

// NewLint starts building a lint attributed to this rule.
func (r *BaseRule) NewLint(start, end int, message string) *LintBuilder {
	return NewLint(r.id, start, end, message).WithRuleName(r.name).WithKind(r.kind)
}
