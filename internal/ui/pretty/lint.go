package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// FormatVersion formats the engine version banner.
func (s *Styles) FormatVersion(version string) string {
	return s.Header.Render("Using gramlint engine version: "+version) + "\n"
}

// FormatLintCount formats the line announcing how many lints follow.
func (s *Styles) FormatLintCount(count int) string {
	return s.Header.Render(fmt.Sprintf("%d lints:", count)) + "\n"
}

// FormatLint formats lint number index, whose covered text is snippet, and
// its suggestions:
//
//	Lint 0: 'Helloo' : Did you mean to spell "Helloo" this way? (suggestions: 2)
//	  Suggestion 0: Hello
func (s *Styles) FormatLint(index int, snippet string, l *lint.Lint) string {
	var builder strings.Builder

	builder.WriteString(s.Index.Render(fmt.Sprintf("Lint %d:", index)))
	builder.WriteString(" '")
	builder.WriteString(renderInline(s.Snippet.Inherit(s.KindStyle(l.Kind)), snippet))
	builder.WriteString("' : ")
	builder.WriteString(s.Message.Render(l.Message))
	builder.WriteString(" ")
	builder.WriteString(s.Count.Render(fmt.Sprintf("(suggestions: %d)", len(l.Suggestions))))
	builder.WriteString("\n")

	for j, suggestion := range l.Suggestions {
		builder.WriteString(fmt.Sprintf("  Suggestion %d: %s\n", j, renderInline(s.Suggestion, suggestion)))
	}

	return builder.String()
}

// renderInline styles raw document text line by line, leaving tabs and
// line lengths untouched.
func renderInline(style lipgloss.Style, text string) string {
	style = style.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatError formats a failure line such as "Failed to create document".
func (s *Styles) FormatError(msg string) string {
	return s.Error.Render(msg) + "\n"
}
