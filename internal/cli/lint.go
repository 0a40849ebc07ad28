package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gramlint/internal/configloader"
	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/binding"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/fix"
	"github.com/yaklabco/gramlint/pkg/fsutil"
	"github.com/yaklabco/gramlint/pkg/lint"
	"github.com/yaklabco/gramlint/pkg/reporter"
)

// stdinArg asks for the text to be read from standard input.
const stdinArg = "-"

// Lines printed when a handle cannot be created.
const (
	msgDocumentFailed = "Failed to create document"
	msgGroupFailed    = "Failed to create lint group"
)

type lintFlags struct {
	format     string
	ruleFormat string
	pack       string
	enable     []string
	disable    []string
	dictionary []string
	markdown   bool
	fix        bool
	jobs       int
	summary    bool
	compact    bool
	metrics    bool
	file       string
	write      bool
	backup     bool
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "rule pack to start from: curated, strict, spelling")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().StringSliceVar(&flags.dictionary, "word", nil, "extra words the spell checker accepts")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "treat the text as Markdown and skip code and HTML")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "print the text with the first suggestion of each lint applied")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of rules evaluated at once (0 = all)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "append a summary line to the output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where the format allows it")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "print analysis metrics to stderr when done")
	cmd.Flags().StringVar(&flags.file, "file", "", "read the text from a file")
	cmd.Flags().BoolVar(&flags.write, "write", false, "with --fix and --file, write the fixed text back to the file")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "with --write, keep the original as <file>"+fsutil.BackupSuffix)
}

// cliConfig maps the flags the user actually set onto a Config, so unset
// flags do not mask file or environment settings.
func cliConfig(cmd *cobra.Command, flags *lintFlags) *config.Config {
	cfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	cfg.Pack = flags.pack
	cfg.Markdown = flags.markdown
	cfg.Fix = flags.fix
	cfg.Jobs = flags.jobs
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.Dictionary = flags.dictionary

	return cfg
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Derive(cmd.ErrOrStderr()))
	logger := logging.FromContext(ctx)

	if err := checkInputFlags(args, flags); err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	}

	in, err := readInput(ctx, cmd, args, flags, logger)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}
	text := in.text
	ctx = logging.WithFields(ctx, logging.FieldInput, in.source)
	logger = logging.FromContext(ctx)

	finalCfg, err := loadConfig(ctx, cmd, flags, logger)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid format: %w", err)}
	}

	out := cmd.OutOrStdout()

	doc, err := newDocument(text, finalCfg.Markdown)
	if err != nil {
		logger.Debug("document creation failed", logging.FieldError, err)
		fmt.Fprintln(out, msgDocumentFailed)
		return &ExitError{Code: ExitFailure, Err: err, Reported: true}
	}
	defer doc.Close()

	var reg *prometheus.Registry
	var groupOpts []lint.GroupOption
	if flags.metrics {
		reg = prometheus.NewRegistry()
		metrics, err := lint.NewMetrics(reg)
		if err != nil {
			return &ExitError{Code: ExitInternalError, Err: err}
		}
		groupOpts = append(groupOpts, lint.WithMetrics(metrics))
	}

	group, err := binding.NewLintGroup(finalCfg, groupOpts...)
	if err != nil {
		logger.Debug("lint group creation failed", logging.FieldError, err)
		fmt.Fprintln(out, msgGroupFailed)
		return &ExitError{Code: ExitFailure, Err: err, Reported: true}
	}
	defer group.Close()

	result := &reporter.Result{
		Source:        in.source,
		Text:          text,
		EngineVersion: binding.EngineVersion(),
	}

	lints, err := analyze(ctx, doc, group, logger)
	if err != nil {
		// A failed pass prints nothing further and still exits zero.
		logger.Error("analysis failed", logging.FieldError, err)
		return nil
	}
	result.Lints = lints

	if finalCfg.Fix {
		fixed, skipped := applyFixes(text, lints, logger)
		result.Skipped = skipped
		if flags.write {
			if err := writeBack(ctx, in.snapshot, fixed, flags.backup, logger); err != nil {
				return &ExitError{Code: ExitIOError, Err: err}
			}
		} else {
			result.Fixed = &fixed
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: flags.summary,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
	})
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("create reporter: %w", err)}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	if reg != nil {
		if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
			logger.Warn("metrics unavailable", logging.FieldError, err)
		}
	}

	return nil
}

// input is the text to analyze and where it came from.
type input struct {
	source string
	text   string

	// snapshot is set when the text was read from a file.
	snapshot *fsutil.Snapshot
}

func checkInputFlags(args []string, flags *lintFlags) error {
	if flags.file != "" && len(args) > 0 {
		return errors.New("--file cannot be combined with a text argument")
	}
	if flags.write && (flags.file == "" || !flags.fix) {
		return errors.New("--write requires --fix and --file")
	}
	if flags.backup && !flags.write {
		return errors.New("--backup requires --write")
	}
	return nil
}

func readInput(ctx context.Context, cmd *cobra.Command, args []string, flags *lintFlags, logger *log.Logger) (*input, error) {
	switch {
	case flags.file != "":
		text, snap, err := fsutil.ReadText(ctx, flags.file)
		if err != nil {
			return nil, err
		}
		return &input{source: flags.file, text: text, snapshot: snap}, nil
	case len(args) == 0:
		return &input{source: "<default>", text: DefaultText}, nil
	case args[0] != stdinArg:
		return &input{source: "<argument>", text: args[0]}, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Info("reading text from the terminal; end it with Ctrl-D")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return &input{source: "<stdin>", text: string(data)}, nil
}

func writeBack(ctx context.Context, snap *fsutil.Snapshot, fixed string, backup bool, logger *log.Logger) error {
	wrote, err := fsutil.WriteBack(ctx, snap, fixed, backup)
	if err != nil {
		return fmt.Errorf("write fixes: %w", err)
	}
	if wrote {
		logger.Info("fixes written", logging.FieldPath, snap.Path)
	} else {
		logger.Debug("nothing to write", logging.FieldPath, snap.Path)
	}
	return nil
}

func loadConfig(ctx context.Context, cmd *cobra.Command, flags *lintFlags, logger *log.Logger) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMarkdown, cfg.Markdown,
		logging.FieldPack, cfg.Pack,
		logging.FieldFix, cfg.Fix,
		logging.FieldJobs, cfg.Jobs,
	)
	return cfg, nil
}

func newDocument(text string, markdown bool) (*binding.Document, error) {
	if markdown {
		return binding.NewMarkdownDocument(text)
	}
	return binding.NewDocument(text)
}

// analyze runs one pass and returns its lints in document order. Records
// that can no longer be read are skipped.
func analyze(ctx context.Context, doc *binding.Document, group *binding.LintGroup, logger *log.Logger) ([]lint.Lint, error) {
	set, err := binding.Analyze(ctx, doc, group)
	if err != nil {
		return nil, err
	}
	defer set.Close()

	records, err := set.Ordered()
	if err != nil {
		return nil, err
	}

	lints := make([]lint.Lint, 0, len(records))
	for _, rec := range records {
		value, err := rec.Value()
		if err != nil {
			logger.Debug("skipping unreadable lint", logging.FieldError, err)
			continue
		}
		lints = append(lints, value)
	}
	return lints, nil
}

// applyFixes applies the first suggestion of every lint that does not
// overlap an earlier one. It returns the fixed text and the number of
// suggestions left out.
func applyFixes(text string, lints []lint.Lint, logger *log.Logger) (string, int) {
	edits := make([]fix.TextEdit, 0, len(lints))
	for i := range lints {
		if edit, ok := lints[i].Edit(0); ok {
			edits = append(edits, edit)
		}
	}

	accepted, skipped, err := fix.Prepare(edits, len(text))
	if err != nil {
		logger.Warn("fixes not applied", logging.FieldError, err)
		return text, len(edits)
	}

	logger.Debug("applying fixes",
		logging.FieldEdits, len(accepted),
		logging.FieldSkipped, len(skipped),
	)
	return fix.ApplyEdits(text, accepted), len(skipped)
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// writeMetrics encodes every gathered metric family in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
