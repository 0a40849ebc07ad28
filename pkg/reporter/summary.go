package reporter

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/lint"
)

// Table layout constants for summary output.
const (
	tableWidth        = 64
	ruleColWidth      = 30
	kindColWidth      = 16
	numColWidth       = 7
	fixableColWidth   = 8
	maxRuleNameLength = 28
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// ruleSummary aggregates the lints of one rule.
type ruleSummary struct {
	id      string
	name    string
	kind    lint.Kind
	count   int
	fixable bool
}

// SummaryReporter prints lint counts per rule instead of the lints.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *Result) (int, error) {
	if result == nil || len(result.Lints) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No lints found"))
		return 0, nil
	}

	r.renderRuleTable(summarizeRules(result.Lints))
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(pretty.NewStats(result.Lints)))

	return len(result.Lints), nil
}

// summarizeRules groups lints by rule, most frequent first, then by ID.
func summarizeRules(lints []lint.Lint) []ruleSummary {
	byID := make(map[string]*ruleSummary)
	for i := range lints {
		l := &lints[i]
		s, ok := byID[l.RuleID]
		if !ok {
			s = &ruleSummary{id: l.RuleID, name: l.RuleName, kind: l.Kind}
			byID[l.RuleID] = s
		}
		s.count++
		s.fixable = s.fixable || l.HasSuggestions()
	}

	rules := make([]ruleSummary, 0, len(byID))
	for _, s := range byID {
		rules = append(rules, *s)
	}
	slices.SortFunc(rules, func(a, b ruleSummary) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return rules
}

func (r *SummaryReporter) renderRuleTable(rules []ruleSummary) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixable", fixableColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, rule := range rules {
		name := config.FormatRuleID(r.opts.RuleFormat, rule.id, rule.name)
		if len(name) > maxRuleNameLength {
			name = name[:maxRuleNameLength] + "…"
		}

		fixable := padLeft("", fixableColWidth)
		if rule.fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixableColWidth))
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.styles.KindStyle(rule.kind).Render(padRight(name, ruleColWidth)),
			padRight(string(rule.kind), kindColWidth),
			padLeft(strconv.Itoa(rule.count), numColWidth),
			fixable,
		)
	}
}
