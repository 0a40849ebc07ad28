package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/lint"
	"github.com/yaklabco/gramlint/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Default     bool     `json:"default"`
	Tags        []string `json:"tags,omitempty"`
}

// packInfo represents a rule pack in JSON output.
type packInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     []string `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, kinds, descriptions and
whether they are part of the default set. With --packs, list the rule packs
instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if flags.format != "text" && flags.format != formatJSON {
				return &ExitError{
					Code: ExitInvalidUsage,
					Err:  fmt.Errorf("invalid format %q: must be text or json", flags.format),
				}
			}

			if flags.packs {
				if flags.format == formatJSON {
					return writeJSON(out, packInfos(rules.Packs()))
				}
				listPacks(out, rules.Packs())
				return nil
			}

			registered := lint.DefaultRegistry.Rules()
			if flags.format == formatJSON {
				return writeJSON(out, ruleInfos(registered))
			}
			listRules(out, registered, config.RuleFormat(flags.ruleFormat))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list rule packs instead of rules")

	return cmd
}

func newListLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Level:           log.InfoLevel,
	})
}

func listRules(w io.Writer, registered []lint.Rule, ruleFormat config.RuleFormat) {
	logger := newListLogger(w)

	if len(registered) == 0 {
		logger.Info("no rules registered")
		return
	}

	logger.Info("available rules")
	for _, rule := range registered {
		def := "-"
		if rule.DefaultEnabled() {
			def = "yes"
		}
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldKind, rule.Kind(),
			"default", def,
			logging.FieldDescription, rule.Description(),
		)
	}
}

func listPacks(w io.Writer, packs []rules.Pack) {
	logger := newListLogger(w)

	logger.Info("available packs")
	for _, pack := range packs {
		logger.Info(pack.Name,
			logging.FieldRules, strings.Join(enabledRuleIDs(pack), ","),
			logging.FieldDescription, pack.Description,
		)
	}
}

func ruleInfos(registered []lint.Rule) []ruleInfo {
	infos := make([]ruleInfo, 0, len(registered))
	for _, rule := range registered {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Kind:        string(rule.Kind()),
			Description: rule.Description(),
			Default:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
		})
	}
	return infos
}

func packInfos(packs []rules.Pack) []packInfo {
	infos := make([]packInfo, 0, len(packs))
	for _, pack := range packs {
		infos = append(infos, packInfo{
			Name:        pack.Name,
			Description: pack.Description,
			Enabled:     enabledRuleIDs(pack),
		})
	}
	return infos
}

// enabledRuleIDs returns the IDs a pack switches on, in registry order.
func enabledRuleIDs(pack rules.Pack) []string {
	ids := make([]string, 0, len(pack.Rules))
	for _, id := range lint.DefaultRegistry.IDs() {
		rc, ok := pack.Rules[id]
		if ok && rc.Enabled != nil && *rc.Enabled {
			ids = append(ids, id)
		}
	}
	return ids
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
