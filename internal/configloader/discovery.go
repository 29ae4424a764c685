package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the directory name used under the system and user config roots.
const appDir = "gomdfmt"

// ConfigPaths holds the configuration files found for one invocation.
// Empty fields mean no file was found.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/gomdfmt/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/gomdfmt/config.yaml.
	User string

	// Project is the nearest .gomdfmt.yml above the working directory.
	Project string

	// Explicit is the file named with --config.
	Explicit string
}

// ProjectConfigNames are the project file names, in order of preference.
// JSON files are read with the YAML decoder.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigNames = []string{
	".gomdfmt.yml",
	".gomdfmt.yaml",
	"gomdfmt.yml",
	"gomdfmt.yaml",
	".gomdfmt.json",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), "config.yaml", "config.yml"),
		User:    firstFile(userConfigDir(), "config.yaml", "config.yml"),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("ProgramData")
		if root == "" {
			root = `C:\ProgramData`
		}
		return filepath.Join(root, appDir)
	}
	return filepath.Join("/etc", appDir)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file found. The walk stops after a
// directory holding a VCS root marker and at the user's home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}

		if found := firstFile(dir, ProjectConfigNames...); found != "" {
			return found, nil
		}
		if isVCSRoot(dir) || dir == home {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that exists as a regular file in dir.
func firstFile(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
