// Package cli provides the Cobra command structure for gramlint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// DefaultText is analyzed when no text argument is given.
const DefaultText = "Helloo ,Wrld!"

// NewRootCommand creates the root gramlint command with all subcommands.
// The root command itself lints its single text argument.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	flags := &lintFlags{}

	rootCmd := &cobra.Command{
		Use:   "gramlint [text]",
		Short: "Check English prose for spelling and grammar slips",
		Long: `gramlint checks a piece of English text for spelling mistakes, stray
punctuation spacing, repeated words and similar slips, and prints every
finding with its replacement suggestions in document order.

With no argument it analyzes "` + DefaultText + `". Pass "-" to read the
text from standard input.

Examples:
  gramlint                           Analyze the built-in sample
  gramlint "Teh cat sat ,on the mat"  Analyze a sentence
  echo "Some text" | gramlint -      Analyze standard input
  gramlint --fix "Helloo ,Wrld!"     Print the text with fixes applied
  gramlint --format json "text"      Output as JSON`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addLintFlags(rootCmd, flags)

	// Add subcommands.
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, &color)

	return rootCmd
}
