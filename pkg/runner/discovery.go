package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gomdfmt/internal/logging"
)

// discovery holds the compiled filters of one Discover call.
type discovery struct {
	opts       Options
	workDir    string
	extensions []string
	include    *patterns
	exclude    *patterns
	ignore     *patterns
	visited    map[string]bool
}

// Discover finds the Markdown files named by opts. Directories are walked
// recursively, skipping hidden and ignored entries; files named explicitly
// are kept whatever their extension unless a glob rejects them. The result
// is sorted, absolute and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discovery{
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		visited:    make(map[string]bool),
	}
	if d.include, err = compilePatterns(opts.Include); err != nil {
		return nil, err
	}
	if d.exclude, err = compilePatterns(opts.Exclude); err != nil {
		return nil, err
	}
	if d.ignore, err = compilePatterns(DefaultIgnore(), opts.Ignore); err != nil {
		return nil, err
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.acceptFile(absPath, true) {
				files = append(files, absPath)
			}
			continue
		}

		found, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	files = slices.Compact(files)

	logging.FromContext(ctx).Debug("discovered files",
		logging.FieldWorkingDir, workDir,
		logging.FieldFilesDiscovered, len(files),
	)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discovery) walk(ctx context.Context, root string) ([]string, error) {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if d.visited[real] {
			return nil, nil
		}
		d.visited[real] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		hidden := strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || d.ignore.match(d.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// Broken or unreadable link.
				return nil //nolint:nilerr // skipped on purpose
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.ignore.match(d.rel(path), true) {
					return nil
				}
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // skipped on purpose
				}
				sub, err := d.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.acceptFile(path, false) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// acceptFile applies the extension and glob filters to a file. Files named
// on the command line skip the extension check.
func (d *discovery) acceptFile(path string, explicit bool) bool {
	if !explicit && !hasExtension(path, d.extensions) {
		return false
	}

	rel := d.rel(path)
	if d.ignore.match(rel, false) || d.exclude.match(rel, false) {
		return false
	}
	return d.include.empty() || d.include.match(rel, false)
}

func (d *discovery) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
