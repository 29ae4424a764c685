package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// ErrInvalidConfig is matched by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the YAML key of the value, e.g. "backups.mode".
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the file that set the value, if known.
	FilePath string

	// Line is the line of the key in FilePath, if known.
	Line int
}

func (e *ValidationError) Error() string {
	var parts []string
	switch {
	case e.FilePath != "" && e.Line > 0:
		parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
	case e.FilePath != "":
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap returns ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns every error and warning as a prefixed message.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// oneOf records an error naming the choices when value is set and is not
// one of them.
func oneOf[T ~string](r *ValidationResult, field string, value T, choices ...T) {
	if value == "" {
		return
	}
	for _, choice := range choices {
		if value == choice {
			return
		}
	}
	names := make([]string, len(choices))
	for i, choice := range choices {
		names[i] = string(choice)
	}
	r.fail(field, value, "invalid value %q; must be one of: %s", value, strings.Join(names, ", "))
}

// Validate checks cfg and returns every problem found.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	oneOf(result, "flavor", cfg.Flavor, config.FlavorCommonMark, config.FlavorGFM)
	oneOf(result, "bullet", cfg.Bullet,
		config.BulletDash, config.BulletStar, config.BulletPlus, config.BulletPreserve)
	oneOf(result, "ordered_style", cfg.OrderedStyle,
		config.OrderedOne, config.OrderedAscending, config.OrderedPreserve)
	oneOf(result, "hard_break", cfg.HardBreak,
		config.HardBreakPreserve, config.HardBreakBackslash, config.HardBreakSpaces)
	oneOf(result, "format", cfg.Format,
		config.FormatText, config.FormatJSON, config.FormatDiff, config.FormatSummary)
	oneOf(result, "color", cfg.Color, config.ColorAuto, config.ColorAlways, config.ColorNever)
	oneOf(result, "backups.mode", cfg.Backups.Mode, "sidecar", "none")

	if cfg.Width < 1 {
		result.fail("max_width", cfg.Width, "max_width must be at least 1")
	}
	if cfg.TabSpaces < config.MinTabSpaces || cfg.TabSpaces > config.MaxTabSpaces {
		result.fail("tab_spaces", cfg.TabSpaces,
			"tab_spaces must be between %d and %d", config.MinTabSpaces, config.MaxTabSpaces)
	}
	if cfg.MaxDepth < 1 {
		result.fail("max_depth", cfg.MaxDepth, "max_depth must be at least 1")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.ThematicBreak != "" && !isThematicBreak(cfg.ThematicBreak) {
		result.fail("thematic_break", cfg.ThematicBreak,
			"%q is not a thematic break; use three or more of '-', '*' or '_'", cfg.ThematicBreak)
	}

	validatePatterns(result, "include", cfg.Include)
	validatePatterns(result, "exclude", cfg.Exclude)
	validatePatterns(result, "ignore", cfg.Ignore)

	return result
}

func validatePatterns(result *ValidationResult, field string, patterns []string) {
	for i, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// isThematicBreak reports whether text is a thematic break on its own: up to
// three leading spaces, then three or more of one of '-', '*' or '_', with
// spaces or tabs between them.
func isThematicBreak(text string) bool {
	rest := strings.TrimLeft(text, " ")
	if len(text)-len(rest) > 3 || rest == "" {
		return false
	}

	char := rest[0]
	if char != '-' && char != '*' && char != '_' {
		return false
	}
	count := 0
	for i := range len(rest) {
		switch rest[i] {
		case char:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}
