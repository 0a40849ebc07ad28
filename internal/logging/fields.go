// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldFormat = "format"

	// Configuration fields.
	FieldMarkdown = "markdown"
	FieldFix      = "fix"
	FieldJobs     = "jobs"
	FieldPack     = "pack"
	FieldFiles    = "files"

	// Analysis fields.
	FieldPass     = "pass"
	FieldGroup    = "group"
	FieldRules    = "rules"
	FieldRule     = "rule"
	FieldTokens   = "tokens"
	FieldLints    = "lints"
	FieldDuration = "duration"
	FieldEdits    = "edits"
	FieldSkipped  = "skipped"

	// Version fields.
	FieldVersion = "version"
	FieldEngine  = "engine"
	FieldBinding = "binding"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldName        = "name"
	FieldKind        = "kind"
	FieldDescription = "description"
)
