package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
)

// helpTheme holds the styles used for help and usage output. It borrows the
// lint palette so help and lint output share colors.
type helpTheme struct {
	heading lipgloss.Style
	command lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
	text    lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	styles := pretty.NewStyles(colorEnabled)
	return helpTheme{
		heading: styles.Bold.Foreground(styles.Punctuation.GetForeground()),
		command: styles.Bold.Foreground(styles.WordChoice.GetForeground()),
		name:    styles.Suggestion.UnsetItalic(),
		flag:    styles.Capitalization,
		dim:     styles.Dim,
		text:    styles.Message,
	}
}

// applyHelp installs styled help and usage functions on cmd; subcommands
// inherit them. The color mode is read when help is rendered, after flag
// parsing.
func applyHelp(cmd *cobra.Command, colorMode *string) {
	theme := func(c *cobra.Command) helpTheme {
		return newHelpTheme(pretty.IsColorEnabled(*colorMode, c.OutOrStdout()))
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprint(c.OutOrStdout(), theme(c).help(c))
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		_, err := fmt.Fprint(c.OutOrStderr(), theme(c).usage(c))
		return err
	})
}

func (t helpTheme) help(cmd *cobra.Command) string {
	var b strings.Builder

	b.WriteString(t.command.Render(cmd.CommandPath()))
	if cmd.Version != "" {
		b.WriteString(" " + t.dim.Render(cmd.Version))
	}
	b.WriteString("\n\n")

	about := cmd.Long
	if about == "" {
		about = cmd.Short
	}
	if about != "" {
		b.WriteString(trimTrailingSpace(about))
		b.WriteString("\n\n")
	}

	b.WriteString(t.usage(cmd))
	return b.String()
}

func (t helpTheme) usage(cmd *cobra.Command) string {
	var b strings.Builder

	b.WriteString(t.heading.Render("Usage:") + "\n")
	if cmd.Runnable() {
		b.WriteString("  " + t.command.Render(cmd.UseLine()) + "\n")
	}
	if cmd.HasAvailableSubCommands() {
		b.WriteString("  " + t.command.Render(cmd.CommandPath()+" [command]") + "\n")
	}

	if cmd.HasExample() {
		b.WriteString("\n" + t.heading.Render("Examples:") + "\n")
		b.WriteString(t.dim.Render(cmd.Example) + "\n")
	}

	if cmd.HasAvailableSubCommands() {
		b.WriteString("\n" + t.heading.Render("Available Commands:") + "\n")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			b.WriteString("  " + t.name.Render(padRight(sub.Name(), cmd.NamePadding())))
			b.WriteString(" " + t.text.Render(sub.Short) + "\n")
		}
	}

	if cmd.HasAvailableLocalFlags() {
		b.WriteString("\n" + t.heading.Render("Flags:") + "\n")
		b.WriteString(t.flags(cmd.LocalFlags()))
	}
	if cmd.HasAvailableInheritedFlags() {
		b.WriteString("\n" + t.heading.Render("Global Flags:") + "\n")
		b.WriteString(t.flags(cmd.InheritedFlags()))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse \"%s\" for more information about a command.\n",
			t.command.Render(cmd.CommandPath()+" [command] --help"))
	}

	return b.String()
}

// flagColumn is one rendered flag: the plain left column is kept for width
// calculations since the styled form carries escape sequences.
type flagColumn struct {
	plain  string
	styled string
	usage  string
}

// flags renders one line per visible flag with descriptions aligned.
func (t helpTheme) flags(fs *pflag.FlagSet) string {
	var columns []flagColumn
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		name := "    --" + f.Name
		styled := "    " + t.flag.Render("--"+f.Name)
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
			styled = t.flag.Render("-"+f.Shorthand) + ", " + t.flag.Render("--"+f.Name)
		}

		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			name += " " + varname
			styled += " " + t.dim.Render(varname)
		}
		if def := defaultText(f); def != "" {
			usage += " " + t.dim.Render("(default "+def+")")
		}

		columns = append(columns, flagColumn{plain: name, styled: styled, usage: usage})
		width = max(width, len(name))
	})

	var b strings.Builder
	for _, col := range columns {
		b.WriteString("  " + col.styled + strings.Repeat(" ", width-len(col.plain)+3))
		b.WriteString(t.text.Render(col.usage) + "\n")
	}
	return b.String()
}

// defaultText returns the default worth showing for f, or "".
func defaultText(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
