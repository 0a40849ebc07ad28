package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/gramlint/pkg/lint"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	tableColumnCount   = 4 // RANGE, TEXT, MESSAGE, RULE
	fixableColumnWidth = 3
	minRangeWidth      = 7
	minTextWidth       = 8
	maxTextWidth       = 24
	minMessageWidth    = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	defaultTermWidth   = 100
	ellipsis           = "..."
)

// TableRow represents a single row in the lint table.
type TableRow struct {
	Range   string
	Text    string
	Message string
	Rule    string
	Kind    lint.Kind
	Fixable bool
}

// NewTableRow converts a lint over text into a table row. rule is the
// already formatted rule identifier.
func NewTableRow(text string, l *lint.Lint, rule string) TableRow {
	snippet := ""
	if l.Span.Start >= 0 && l.Span.End <= len(text) && l.Span.Start <= l.Span.End {
		snippet = text[l.Span.Start:l.Span.End]
	}
	return TableRow{
		Range:   fmt.Sprintf("%d-%d", l.Span.Start, l.Span.End),
		Text:    oneLine(snippet),
		Message: l.Message,
		Rule:    rule,
		Kind:    l.Kind,
		Fixable: l.HasSuggestions(),
	}
}

// TableFormatter formats lints as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	rng     int
	text    int
	message int
	rule    int
}

// FormatTable formats rows as a styled table. It returns the empty string
// when there are no rows.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats Stats) string {
	parts := []string{fmt.Sprintf("%d lints", stats.Total)}
	for _, kind := range kindOrder {
		if n := stats.ByKind[kind]; n > 0 {
			parts = append(parts, t.styles.KindStyle(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}
	if stats.Fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", stats.Fixable)))
	}
	return " " + strings.Join(parts, " | ")
}

// calculateColumnWidths determines column widths from content, shrinking
// the message column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		rng:     minRangeWidth,
		text:    minTextWidth,
		message: minMessageWidth,
		rule:    minRuleWidth,
	}

	for _, row := range rows {
		widths.rng = max(widths.rng, uniseg.StringWidth(row.Range))
		widths.text = max(widths.text, min(maxTextWidth, uniseg.StringWidth(row.Text)))
		widths.message = max(widths.message, uniseg.StringWidth(row.Message))
		widths.rule = max(widths.rule, uniseg.StringWidth(row.Rule))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.message = max(minMessageWidth, widths.message-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.rng + widths.text + widths.message + widths.rule +
		(tablePadding * tableColumnCount) + fixableColumnWidth
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + padRight("RANGE", widths.rng) + "  " +
		padRight("TEXT", widths.text) + "  " +
		padRight("MESSAGE", widths.message) + "  " +
		padRight("RULE", widths.rule) + "   "
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single row, coloring the text cell by lint kind.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	fixable := " "
	if row.Fixable {
		fixable = t.styles.TableFixable.Render(fixableSymbol)
	}

	text := padRight(truncateString(row.Text, widths.text), widths.text)

	return " " + padRight(row.Range, widths.rng) + "  " +
		t.styles.KindStyle(row.Kind).Render(text) + "  " +
		padRight(truncateString(row.Message, widths.message), widths.message) + "  " +
		padRight(truncateString(row.Rule, widths.rule), widths.rule) + "  " +
		fixable
}

// formatLegend formats the legend explaining the table symbols.
func (t *TableFormatter) formatLegend() string {
	fixableSample := fixableSymbol
	if t.colorEnabled {
		fixableSample = t.styles.TableFixable.Render(fixableSymbol)
	}
	return t.styles.TableLegend.Render(" Legend: " + fixableSample + " = has suggestions")
}

// truncateString truncates str to maxWidth display cells, adding "..." if
// truncated. Grapheme clusters are never split.
func truncateString(str string, maxWidth int) string {
	if uniseg.StringWidth(str) <= maxWidth {
		return str
	}

	limit := maxWidth - len(ellipsis)
	suffix := ellipsis
	if limit <= 0 {
		limit, suffix = maxWidth, ""
	}

	var builder strings.Builder
	width := 0
	state := -1
	rest := str
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > limit {
			break
		}
		builder.WriteString(cluster)
		width += w
	}
	return builder.String() + suffix
}

// padRight pads str with spaces to width display cells. It must be applied
// before styling.
func padRight(str string, width int) string {
	if w := lipgloss.Width(str); w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// oneLine replaces line breaks and tabs so a snippet fits in a table cell.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s)
}
