// Package rules provides the built-in lint rules for gramlint.
//
// # Rules
//
//   - GL001: spell-check - Words should be spelled correctly
//   - GL002: space-before-punctuation - No space before , . ; : ! ?
//   - GL003: missing-space-after-comma - Commas and semicolons are followed by a space
//   - GL004: repeated-words - Words should not be repeated back to back
//   - GL005: a-vs-an - Indefinite article matches the following sound
//   - GL006: sentence-capitalization - Sentences start with a capital letter
//   - GL007: multiple-spaces - Words are separated by a single space
//   - GL008: long-sentences - Sentences stay under a word limit (off by default)
//
// Rules work on the token stream of a document.Document and skip
// unlintable tokens, so code in Markdown documents is never checked.
//
// # Rule Packs
//
// Rule packs are configuration presets:
//
//   - curated: the default set
//   - strict: curated plus long-sentences at 30 words
//   - spelling: spell-check only
//
// Use PackByName, Packs or ApplyPack to access pack definitions programmatically.
//
// # Registration
//
// Rules are registered with lint.DefaultRegistry during init via RegisterAll.
package rules
