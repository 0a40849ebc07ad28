package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// kindOrder is the order kinds appear in summaries.
//
//nolint:gochecknoglobals // Fixed display order.
var kindOrder = []lint.Kind{
	lint.KindSpelling,
	lint.KindPunctuation,
	lint.KindRepetition,
	lint.KindCapitalization,
	lint.KindWordChoice,
	lint.KindStyle,
}

// Stats aggregates a set of lints.
type Stats struct {
	Total   int
	Fixable int
	ByKind  map[lint.Kind]int
	ByRule  map[string]int
}

// NewStats counts lints by kind and rule.
func NewStats(lints []lint.Lint) Stats {
	stats := Stats{
		ByKind: make(map[lint.Kind]int),
		ByRule: make(map[string]int),
	}
	for i := range lints {
		stats.Total++
		stats.ByKind[lints[i].Kind]++
		stats.ByRule[lints[i].RuleID]++
		if lints[i].HasSuggestions() {
			stats.Fixable++
		}
	}
	return stats
}

// FormatSummaryOneLine formats stats as a single line.
// Example: "4 lints (2 spelling, 2 punctuation), 4 fixable".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	if stats.Total == 0 {
		return s.Success.Render("No lints found") + "\n"
	}

	lintWord := "lints"
	if stats.Total == 1 {
		lintWord = "lint"
	}

	var kindParts []string
	for _, kind := range kindOrder {
		if n := stats.ByKind[kind]; n > 0 {
			kindParts = append(kindParts, s.KindStyle(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}

	line := fmt.Sprintf("%d %s", stats.Total, lintWord)
	if len(kindParts) > 0 {
		line += " (" + strings.Join(kindParts, ", ") + ")"
	}
	if stats.Fixable > 0 {
		line += ", " + s.Success.Render(fmt.Sprintf("%d fixable", stats.Fixable))
	}
	return line + "\n"
}
