// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Lint kind styles
	Spelling       lipgloss.Style
	Punctuation    lipgloss.Style
	Repetition     lipgloss.Style
	Capitalization lipgloss.Style
	WordChoice     lipgloss.Style
	Style          lipgloss.Style

	// Lint components
	Header     lipgloss.Style
	Index      lipgloss.Style
	Snippet    lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	Count      lipgloss.Style
	Error      lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Spelling:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Punctuation:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Repetition:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Capitalization: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		WordChoice:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Style:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Header:     lipgloss.NewStyle().Bold(true),
		Index:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Snippet:    lipgloss.NewStyle().Bold(true),
		RuleID:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:    lipgloss.NewStyle(),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),
		Count:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableFixable:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Spelling:       plain,
		Punctuation:    plain,
		Repetition:     plain,
		Capitalization: plain,
		WordChoice:     plain,
		Style:          plain,
		Header:         plain,
		Index:          plain,
		Snippet:        plain,
		RuleID:         plain,
		Message:        plain,
		Suggestion:     plain,
		Count:          plain,
		Error:          plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableFixable:   plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// KindStyle returns the style used for lints of the given kind.
func (s *Styles) KindStyle(kind lint.Kind) lipgloss.Style {
	switch kind {
	case lint.KindSpelling:
		return s.Spelling
	case lint.KindPunctuation:
		return s.Punctuation
	case lint.KindRepetition:
		return s.Repetition
	case lint.KindCapitalization:
		return s.Capitalization
	case lint.KindWordChoice:
		return s.WordChoice
	case lint.KindStyle:
		return s.Style
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
