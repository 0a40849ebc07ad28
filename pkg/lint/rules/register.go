package rules

import "github.com/yaklabco/gramlint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Spelling
	registry.Register(NewSpellCheckRule()) // GL001

	// Punctuation
	registry.Register(NewSpaceBeforePunctuationRule()) // GL002
	registry.Register(NewMissingSpaceAfterCommaRule()) // GL003

	// Words
	registry.Register(NewRepeatedWordsRule()) // GL004
	registry.Register(NewArticleRule())       // GL005

	// Sentences
	registry.Register(NewSentenceCapitalizationRule()) // GL006
	registry.Register(NewLongSentencesRule())          // GL008

	// Whitespace
	registry.Register(NewMultipleSpacesRule()) // GL007
}

// RegisterAliases registers short alias names that differ from the rule's
// canonical Name().
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("spelling", "GL001")
	registry.RegisterAlias("articles", "GL005")
	registry.RegisterAlias("capitalization", "GL006")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
}
