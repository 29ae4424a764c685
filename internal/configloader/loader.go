// Package configloader resolves the gomdfmt configuration. It discovers the
// system, user and project files, layers them with the --config file,
// GOMDFMT_* environment variables and command-line flags, and validates the
// result.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the current directory.
	WorkingDir string

	// ExplicitPath is a file named with --config. It is loaded after the
	// discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// CLIConfig holds values set by command-line flags. Zero values are
	// treated as unset.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and how it was built.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Paths are the discovered configuration files.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were applied, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems, such as unknown keys.
	Warnings []string
}

// origin records where a top-level key was last set.
type origin struct {
	path string
	line int
}

// Load resolves the configuration. Precedence, highest first:
//  1. command-line flags (opts.CLIConfig)
//  2. GOMDFMT_* environment variables
//  3. the --config file
//  4. the project file (.gomdfmt.yml, searched upward)
//  5. the user file ($XDG_CONFIG_HOME/gomdfmt/config.yaml)
//  6. the system file (/etc/gomdfmt/config.yaml)
//  7. defaults
//
// Invalid values are reported as a *ValidationError wrapping
// ErrInvalidConfig, pointing at the file and line that set them.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()
	origins := map[string]origin{}

	layers := []struct {
		path   string
		ignore bool
	}{
		{paths.System, opts.IgnoreSystemConfig},
		{paths.User, opts.IgnoreUserConfig},
		{paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.path == "" || layer.ignore {
			continue
		}
		warnings, err := applyFile(cfg, layer.path, origins)
		if err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
		logger.Debug("loaded config", logging.FieldConfig, layer.path)
	}

	if !opts.IgnoreEnv {
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := applyEnv(cfg, lookup); err != nil {
			return nil, err
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	if !validation.Valid() {
		first := validation.Errors[0]
		if o, ok := origins[topKey(first.Field)]; ok {
			first.FilePath, first.Line = o.path, o.line
		}
		return nil, &first
	}

	result.Config = cfg
	return result, nil
}

// applyFile decodes the YAML file at path over cfg. Keys the file does not
// mention keep their current values. It returns warnings for unknown keys.
func applyFile(cfg *config.Config, path string, origins map[string]origin) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, yamlError(path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ValidationError{FilePath: path, Line: root.Line, Message: "expected a mapping at the top level"}
	}
	if err := root.Decode(cfg); err != nil {
		return nil, yamlError(path, err)
	}

	var warnings []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !slices.Contains(knownKeys, key.Value) {
			warnings = append(warnings, fmt.Sprintf("%s:%d: unknown key %q is ignored", path, key.Line, key.Value))
			continue
		}
		origins[key.Value] = origin{path: path, line: key.Line}
	}
	return warnings, nil
}

// knownKeys are the top-level keys of a configuration file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = []string{
	"flavor", "max_width", "tab_spaces", "bullet", "ordered_style",
	"thematic_break", "hard_break", "infer_fence_language", "max_depth",
	"verify", "include", "exclude", "ignore", "jobs", "follow_symlinks",
	"backups", "format", "color",
}

// topKey returns the top-level key of a field path such as
// "backups.mode" or "ignore[2]".
func topKey(field string) string {
	if i := strings.IndexAny(field, ".["); i >= 0 {
		return field[:i]
	}
	return field
}

// yamlError converts a yaml.v3 error into a ValidationError, moving the
// "line N:" prefix of the message into Line.
func yamlError(path string, err error) *ValidationError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		msg = typeErr.Errors[0]
	}

	verr := &ValidationError{FilePath: path, Message: msg}
	var line int
	if _, scanErr := fmt.Sscanf(msg, "line %d:", &line); scanErr == nil {
		verr.Line = line
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			verr.Message = rest
		}
	}
	return verr
}
