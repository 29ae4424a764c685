// Package cli provides the Cobra command structure for gomdfmt.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the gomdfmt command. Run without a subcommand it
// formats, exactly like "gomdfmt format".
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}
	flags := &formatFlags{}

	rootCmd := &cobra.Command{
		Use:   "gomdfmt [paths...]",
		Short: "Reflow Markdown to a maximum line width",
		Long: `gomdfmt reformats Markdown so that every line fits a maximum width.

Paragraphs are re-flowed, lists and block quotes are re-indented, tables are
aligned and headings are normalized. A block that cannot be made to fit is
left exactly as it was written, so formatting never loses content.

Without --write, gomdfmt only reports which files would change.`,
		Example: formatExamples,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", "auto", "colorize output: auto, always, never")
	addFormatFlags(rootCmd, flags)

	rootCmd.AddCommand(newFormatCommand(global))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(global))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(rootCmd.OutOrStdout()).ApplyToCommand(rootCmd)

	return rootCmd
}
