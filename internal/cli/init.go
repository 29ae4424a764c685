package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/fsutil"
)

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .gomdfmt.yml configuration file",
		Long: `Create a commented .gomdfmt.yml in the current directory.

gomdfmt finds the file by searching upward from the working directory, so
one file at the repository root configures the whole tree.`,
		Example: `  gomdfmt init                      # minimal .gomdfmt.yml
  gomdfmt init --full               # every option with its default
  gomdfmt init --format json        # .gomdfmt.json
  gomdfmt init -o ci/gomdfmt.yml    # custom path, use with --config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every option")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .gomdfmt.yml or .gomdfmt.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	output := flags.output
	if output == "" {
		output = ".gomdfmt.yml"
		if flags.format == "json" {
			output = ".gomdfmt.json"
		}
	}

	path, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", output))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, output)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full, Format: flags.format})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}
	if err := fsutil.WriteAtomic(cmd.Context(), path, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, output)
	return nil
}
