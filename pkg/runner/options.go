// Package runner formats many files at once: it discovers the Markdown files
// under the given paths and runs each through a format.Pipeline on a bounded
// pool of workers.
package runner

import "github.com/yaklabco/gomdfmt/pkg/config"

// Options controls discovery and concurrency for a run.
type Options struct {
	// Paths are the files or directories to format. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob patterns. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions lists the lowercase extensions, with leading dot, of the
	// files discovered inside directories. Defaults to DefaultExtensions().
	Extensions []string

	// Include limits discovery to files matching one of these globs.
	Include []string

	// Exclude skips files matching one of these globs.
	Exclude []string

	// Ignore skips files and whole directories matching one of these globs,
	// in addition to DefaultIgnore.
	Ignore []string

	// FollowSymlinks makes discovery descend into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of files formatted concurrently. 0 or negative
	// means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultIgnore lists directories that are never searched for Markdown.
func DefaultIgnore() []string {
	return []string{"node_modules", ".git", "vendor"}
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// OptionsFromConfig builds run options for paths from the discovery settings
// of cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg == nil {
		return opts
	}

	opts.Include = cfg.Include
	opts.Exclude = cfg.Exclude
	opts.Ignore = cfg.Ignore
	opts.FollowSymlinks = cfg.FollowSymlinks
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
