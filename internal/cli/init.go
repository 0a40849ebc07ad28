package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/logging"
	"github.com/yaklabco/gramlint/pkg/config"
	"github.com/yaklabco/gramlint/pkg/fsutil"
	"github.com/yaklabco/gramlint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// defaultConfigFile is the file init writes when no --output is given.
const defaultConfigFile = ".gramlint.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gramlint configuration file",
		Long: `Create a new .gramlint.yml configuration file in the current directory.
The file names a rule pack and can be customized to enable or disable rules,
tune rule options and add words to the dictionary.

Examples:
  gramlint init                      Create .gramlint.yml using the curated pack
  gramlint init --pack strict        Start from the strict pack
  gramlint init --full               Spell out every rule of the pack
  gramlint init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every rule setting of the pack into the file")
	cmd.Flags().StringVar(&flags.pack, "pack", "curated", "Rule pack to start from: curated, strict, spelling")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gramlint.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := newListLogger(cmd.OutOrStdout())

	if rules.PackByName(flags.pack) == nil {
		return &ExitError{
			Code: ExitInvalidUsage,
			Err:  fmt.Errorf("unknown pack %q; available packs: %v", flags.pack, rules.PackNames()),
		}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigFile
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		if _, err := fsutil.CreateBackup(cmd.Context(), absPath); err != nil {
			return &ExitError{Code: ExitIOError, Err: err}
		}
	}

	content, err := initialConfig(flags.pack, flags.full)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldPack, flags.pack)
	logger.Info("run 'gramlint rules' to see all available rules")

	return nil
}

// initialConfig renders the starting configuration. The full form copies
// the pack's rule settings into the file and drops the pack reference.
func initialConfig(pack string, full bool) ([]byte, error) {
	cfg := config.NewConfig()
	if !full {
		cfg.Pack = pack
		return cfg.ToYAML()
	}

	if err := rules.ApplyPack(cfg, pack); err != nil {
		return nil, err
	}
	return cfg.ToYAML()
}
