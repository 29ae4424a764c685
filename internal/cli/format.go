package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdfmt/internal/configloader"
	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/format"
	"github.com/yaklabco/gomdfmt/pkg/reporter"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// stdinPath names standard input in reports and diffs.
const stdinPath = "<stdin>"

type formatFlags struct {
	write          bool
	check          bool
	diff           bool
	stdin          bool
	width          int
	indent         int
	flavor         string
	format         string
	jobs           int
	backup         bool
	verify         bool
	bullet         string
	include        []string
	exclude        []string
	ignore         []string
	followSymlinks bool
	verbose        bool
}

const formatExamples = `  gomdfmt                        # report files under . that would change
  gomdfmt --write docs/          # reformat docs/ in place
  gomdfmt --check                # exit 1 if anything would change (CI)
  gomdfmt --diff README.md       # show the changes as a unified diff
  gomdfmt --width 72 --indent 4  # override the configured layout
  cat notes.md | gomdfmt --stdin # format standard input to standard output`

func newFormatCommand(global *globalFlags) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format Markdown files (the default command)",
		Long: `Format the Markdown files found under the given paths.

Directories are searched recursively for .md and .markdown files; hidden
entries and node_modules, .git and vendor are skipped. Files named
explicitly are always formatted.`,
		Example: formatExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, flags)
		},
	}
	addFormatFlags(cmd, flags)

	return cmd
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	fs := cmd.Flags()
	fs.BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	fs.BoolVar(&flags.check, "check", false, "exit with status 1 if any file would change")
	fs.BoolVar(&flags.diff, "diff", false, "print a unified diff of the changes")
	fs.BoolVar(&flags.stdin, "stdin", false, "format standard input and write the result to standard output")
	fs.IntVar(&flags.width, "width", 0, "maximum line width (default 80)")
	fs.IntVar(&flags.indent, "indent", 0, "columns per nesting level, 1-4 (default 2)")
	fs.StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	fs.StringVar(&flags.format, "format", "", "report format: text, json, diff, summary")
	fs.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.BoolVar(&flags.backup, "backup", false, "keep a .gomdfmt.bak copy of every rewritten file")
	fs.BoolVar(&flags.verify, "verify", false, "format twice and skip files whose formatting is not stable")
	fs.StringVar(&flags.bullet, "bullet", "", `unordered list marker: "-", "*", "+", preserve`)
	fs.StringSliceVar(&flags.include, "include", nil, "only format files matching these globs")
	fs.StringSliceVar(&flags.exclude, "exclude", nil, "never format files matching these globs")
	fs.StringSliceVar(&flags.ignore, "ignore", nil, "skip files and directories matching these globs")
	fs.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links during discovery")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged files too")
}

// cliConfig converts the flags the user set into a configuration layer.
func cliConfig(cmd *cobra.Command, global *globalFlags, flags *formatFlags) *config.Config {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		Width:          flags.width,
		TabSpaces:      flags.indent,
		Flavor:         config.Flavor(flags.flavor),
		Format:         config.OutputFormat(flags.format),
		Bullet:         config.BulletStyle(flags.bullet),
		Jobs:           flags.jobs,
		Verify:         flags.verify,
		FollowSymlinks: flags.followSymlinks,
		Write:          flags.write,
		Check:          flags.check,
		Diff:           flags.diff,
		Include:        flags.include,
		Exclude:        flags.exclude,
		Ignore:         flags.ignore,
	}
	cfg.Backups.Enabled = flags.backup
	if changed("color") {
		cfg.Color = config.ColorMode(global.color)
	}
	if flags.diff && cfg.Format == "" {
		cfg.Format = config.FormatDiff
	}
	return cfg
}

func checkFlags(args []string, flags *formatFlags) error {
	switch {
	case flags.write && flags.check:
		return usageError(errors.New("--write and --check cannot be used together"))
	case flags.stdin && flags.write:
		return usageError(errors.New("--write cannot be used with --stdin; the result goes to standard output"))
	case flags.stdin && len(args) > 0:
		return usageError(errors.New("--stdin does not take paths"))
	case flags.width < 0 || flags.jobs < 0:
		return usageError(errors.New("--width and --jobs must not be negative"))
	default:
		return nil
	}
}

func runFormat(cmd *cobra.Command, args []string, global *globalFlags, flags *formatFlags) error {
	if err := checkFlags(args, flags); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLIConfig:    cliConfig(cmd, global, flags),
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	cfg := loaded.Config

	logger.Debug("configuration loaded",
		logging.FieldFiles, loaded.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldWidth, cfg.Width,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	pipeline := format.NewPipeline(format.NewEngine(cfg))

	if flags.stdin {
		return formatStdin(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), pipeline, cfg)
	}

	opts := runner.OptionsFromConfig(cfg, args)
	opts.WorkingDir = workDir

	logger.Debug("starting run", logging.FieldPaths, args, logging.FieldWorkingDir, workDir)

	result, err := runner.New(pipeline).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("format run: %w", err)
	}

	out := cmd.OutOrStdout()
	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      cfg.Format,
		Color:       string(cfg.Color),
		ShowSummary: true,
		Write:       cfg.Write,
		Verbose:     flags.verbose,
		TermWidth:   terminalWidth(out),
		WorkingDir:  workDir,
	})
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(result, cfg.Check)
}

// formatStdin formats standard input. The formatted text goes to out, or
// the diff when one was asked for; with --check nothing is written.
func formatStdin(ctx context.Context, in io.Reader, out io.Writer, pipeline *format.Pipeline, cfg *config.Config) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	opts := format.PipelineOptionsFromConfig(cfg)
	opts.Write = false

	result, err := pipeline.ProcessContent(ctx, stdinPath, content, opts)
	if err != nil {
		return fmt.Errorf("format standard input: %w", err)
	}

	switch {
	case cfg.Check:
	case cfg.Diff || cfg.Format == config.FormatDiff:
		if result.Diff != nil {
			if _, err := io.WriteString(out, result.Diff.String()); err != nil {
				return fmt.Errorf("write diff: %w", err)
			}
		}
	default:
		if _, err := out.Write(result.Formatted); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if cfg.Check && result.Changed {
		return ErrFilesChanged
	}
	return nil
}
