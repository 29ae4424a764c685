package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/diff"
	"github.com/yaklabco/gomdfmt/pkg/fsutil"
)

// Errors returned by the pipeline, for use with errors.Is.
var (
	ErrFileNotFound     = fsutil.ErrNotFound
	ErrPermissionDenied = fsutil.ErrPermissionDenied
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// skipModified is the skip reason of files edited while they were formatted.
const skipModified = "file modified during processing"

// PipelineResult is what happened to one file.
type PipelineResult struct {
	*FileResult

	Path string

	// OriginalInfo is the file as it was read; nil for in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Diff is set when diffs were requested and the content changed.
	Diff *diff.Diff

	// Skipped files were left alone; SkipReason says why.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// NeedsFormatting reports whether formatting changes the content.
func (pr *PipelineResult) NeedsFormatting() bool {
	return pr.FileResult != nil && pr.Changed
}

// Summary describes the result in a few words.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "formatted (backup created)"
		}
		return "formatted"
	}
	if pr.NeedsFormatting() {
		return "needs formatting"
	}
	return "ok"
}

// PipelineOptions selects what the pipeline does besides formatting.
type PipelineOptions struct {
	// Write replaces changed files on disk.
	Write bool

	// Diff attaches a unified diff to changed results.
	Diff bool

	Backup fsutil.BackupConfig

	// HashCheck re-reads and hashes a file before replacing it, on top of
	// the size and modification time comparison.
	HashCheck bool
}

// DefaultPipelineOptions reports without writing and hashes before writes.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Backup: fsutil.DefaultBackupConfig(), HashCheck: true}
}

// PipelineOptionsFromConfig derives pipeline options from the run
// configuration. A nil cfg gives the defaults.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Write = cfg.Write
	opts.Diff = cfg.Diff || cfg.Format == config.FormatDiff || cfg.Format == config.FormatSummary
	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	return opts
}

// Pipeline reads, formats and, in write mode, safely replaces files.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline formatting with engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile formats the file at path. In write mode a changed file is
// replaced atomically, after an optional backup, unless it changed on disk
// since it was read; such files are reported as skipped.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := p.ProcessContent(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if opts.Write && result.Changed {
		err = p.replace(ctx, result, opts)
	}
	return result, err
}

func (p *Pipeline) replace(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	info := result.OriginalInfo

	modified, err := fsutil.CheckModified(ctx, info, opts.HashCheck)
	switch {
	case err != nil:
		return fmt.Errorf("check modified: %w", err)
	case modified:
		result.Skipped, result.SkipReason = true, skipModified
		return nil
	}

	if result.BackupCreated, err = fsutil.CreateBackup(ctx, info.Path, opts.Backup); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, info.Path, result.Formatted, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// ProcessContent formats content that is already in memory, such as
// standard input. It never touches the file system.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	opts PipelineOptions,
) (*PipelineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format %s: %w", path, err)
	}

	formatted, err := p.Engine.Format(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{FileResult: formatted, Path: path}
	if opts.Diff && formatted.Changed {
		result.Diff = diff.Generate(path, formatted.Original, formatted.Formatted)
	}
	return result, nil
}
