package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration gomdfmt would use in the current directory,
after merging system, user and project files, --config and GOMDFMT_*
environment variables. The files that contributed are listed in the header.`,
		Example: `  gomdfmt config
  gomdfmt config --format json
  GOMDFMT_MAX_WIDTH=100 gomdfmt config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, global, encoding)
		},
	}

	cmd.Flags().StringVar(&encoding, "format", config.EncodingYAML, "output format: yaml or json")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags, encoding string) error {
	if encoding != config.EncodingYAML && encoding != config.EncodingJSON {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", encoding))
	}

	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}

	header := []string{"Effective gomdfmt configuration."}
	if len(loaded.LoadedFrom) == 0 {
		header = append(header, "No configuration file found; built-in defaults.")
	}
	for _, path := range loaded.LoadedFrom {
		header = append(header, "Loaded from "+path)
	}

	out, err := config.Encode(loaded.Config, encoding, header...)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
