package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GOMDFMT_"

// envVar binds one environment variable to a configuration field.
type envVar struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"FLAVOR", "flavor", "Markdown flavor: commonmark or gfm",
		func(cfg *config.Config, v string) error { cfg.Flavor = config.Flavor(v); return nil }},
	{"MAX_WIDTH", "max_width", "Maximum line width",
		intSetter(func(cfg *config.Config, n int) { cfg.Width = n })},
	{"TAB_SPACES", "tab_spaces", "Columns per nesting level (1-4)",
		intSetter(func(cfg *config.Config, n int) { cfg.TabSpaces = n })},
	{"BULLET", "bullet", "Bullet marker: -, *, + or preserve",
		func(cfg *config.Config, v string) error { cfg.Bullet = config.BulletStyle(v); return nil }},
	{"ORDERED_STYLE", "ordered_style", "Ordered numbering: one, ascending or preserve",
		func(cfg *config.Config, v string) error { cfg.OrderedStyle = config.OrderedStyle(v); return nil }},
	{"HARD_BREAK", "hard_break", "Hard break style: preserve, backslash or spaces",
		func(cfg *config.Config, v string) error { cfg.HardBreak = config.HardBreakStyle(v); return nil }},
	{"INFER_FENCE_LANGUAGE", "infer_fence_language", "Detect the language of unlabeled fences: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.InferFenceLanguage = b })},
	{"VERIFY", "verify", "Skip files whose formatting is not stable: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.Verify = b })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intSetter(func(cfg *config.Config, n int) { cfg.Jobs = n })},
	{"FORMAT", "format", "Report format: text, json, diff or summary",
		func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil }},
	{"COLOR", "color", "Colored output: auto, always or never",
		func(cfg *config.Config, v string) error { cfg.Color = config.ColorMode(v); return nil }},
	{"IGNORE", "ignore", "Comma-separated ignore patterns",
		func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil }},
	{"INCLUDE", "include", "Comma-separated include patterns",
		func(cfg *config.Config, v string) error { cfg.Include = splitList(v); return nil }},
	{"EXCLUDE", "exclude", "Comma-separated exclude patterns",
		func(cfg *config.Config, v string) error { cfg.Exclude = splitList(v); return nil }},
	{"BACKUPS_ENABLED", "backups.enabled", "Keep a backup of rewritten files: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.Backups.Enabled = b })},
	{"BACKUPS_MODE", "backups.mode", "Backup mode: sidecar or none",
		func(cfg *config.Config, v string) error { cfg.Backups.Mode = v; return nil }},
	{"NO_BACKUPS", "no_backups", "Disable backups: true or false",
		boolSetter(func(cfg *config.Config, b bool) { cfg.NoBackups = b })},
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(cfg, n)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// splitList parses a comma-separated list, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromEnv applies GOMDFMT_* variables to cfg. Empty variables are
// ignored.
func LoadFromEnv(cfg *config.Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := EnvPrefix + v.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return &ValidationError{Field: v.field, Value: value, Message: name + ": " + err.Error()}
		}
	}
	return nil
}

// EnvVarName returns the environment variable bound to a config field, or
// the empty string.
func EnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return EnvPrefix + v.suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with a short
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[EnvPrefix+v.suffix] = v.description
	}
	return out
}
