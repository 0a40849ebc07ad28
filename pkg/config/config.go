// Package config defines the configuration types for gramlint.
// These types are plain data with no dependency on how they are loaded.
package config

// RuleConfig holds per-rule configuration.
type RuleConfig struct {
	Enabled *bool          `yaml:"enabled,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// OutputFormat specifies how lint results are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "spell-check"
	RuleFormatID       RuleFormat = "id"       // "GL001"
	RuleFormatCombined RuleFormat = "combined" // "GL001/spell-check"
)

// Config is the root configuration structure.
type Config struct {
	// Markdown parses input as Markdown so code and HTML are skipped.
	Markdown bool `yaml:"markdown,omitempty"`

	// Pack names a rule pack whose settings apply beneath Rules.
	Pack string `yaml:"pack,omitempty"`

	// Dictionary lists extra words the spell checker accepts.
	Dictionary []string `yaml:"dictionary,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-"`

	// Fix prints the text with suggestions applied.
	Fix bool `yaml:"-"`

	// Jobs bounds the number of rules evaluated concurrently (0 = unbounded).
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs or names to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs or names to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}
