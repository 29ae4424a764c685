// Package config defines core configuration types for gomdfmt.
// These types are pure data structures; loading and layering live in
// internal/configloader.
package config

import "github.com/yaklabco/gomdfmt/pkg/layout"

// Defaults applied by NewConfig.
const (
	DefaultMaxWidth      = 80
	DefaultTabSpaces     = 2
	DefaultMaxDepth      = 64
	DefaultThematicBreak = "---"
)

// Limits of the indent unit.
const (
	MinTabSpaces = 1
	MaxTabSpaces = 4
)

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Mode    string `json:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// BulletStyle selects the marker of unordered list items.
type BulletStyle string

const (
	BulletDash     BulletStyle = "-"
	BulletStar     BulletStyle = "*"
	BulletPlus     BulletStyle = "+"
	BulletPreserve BulletStyle = "preserve"
)

// OrderedStyle selects how ordered list items are numbered.
type OrderedStyle string

const (
	// OrderedOne numbers every item with the list's start number.
	OrderedOne OrderedStyle = "one"
	// OrderedAscending counts up from the list's start number.
	OrderedAscending OrderedStyle = "ascending"
	// OrderedPreserve keeps the numbers written in the source.
	OrderedPreserve OrderedStyle = "preserve"
)

// HardBreakStyle selects how hard line breaks are written.
type HardBreakStyle string

const (
	HardBreakPreserve  HardBreakStyle = "preserve"
	HardBreakBackslash HardBreakStyle = "backslash"
	HardBreakSpaces    HardBreakStyle = "spaces"
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the root configuration structure for gomdfmt.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `json:"flavor" yaml:"flavor"`

	// Width is the maximum line width.
	Width int `json:"max_width" yaml:"max_width"`

	// TabSpaces is the number of columns one level of nesting adds.
	TabSpaces int `json:"tab_spaces" yaml:"tab_spaces"`

	// Bullet is the marker used for unordered list items.
	Bullet BulletStyle `json:"bullet" yaml:"bullet"`

	// OrderedStyle controls the numbering of ordered list items.
	OrderedStyle OrderedStyle `json:"ordered_style" yaml:"ordered_style"`

	// ThematicBreak is the text written for thematic breaks.
	ThematicBreak string `json:"thematic_break" yaml:"thematic_break"`

	// HardBreak controls how hard line breaks are written.
	HardBreak HardBreakStyle `json:"hard_break" yaml:"hard_break"`

	// InferFenceLanguage adds a detected language to fences without one.
	InferFenceLanguage bool `json:"infer_fence_language" yaml:"infer_fence_language"`

	// MaxDepth is the deepest nesting that is still reformatted.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Verify reformats the output once more and skips unstable files.
	Verify bool `json:"verify" yaml:"verify"`

	// Include contains glob patterns a file must match to be formatted.
	Include []string `json:"include,omitempty" yaml:"include,omitempty"`

	// Exclude contains glob patterns for files that are never formatted.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`

	// Ignore contains glob patterns for files and directories to skip
	// during discovery.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Jobs specifies the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `json:"jobs" yaml:"jobs"`

	// FollowSymlinks makes discovery follow symbolic links.
	FollowSymlinks bool `json:"follow_symlinks" yaml:"follow_symlinks"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `json:"backups" yaml:"backups"`

	// Format specifies the output format.
	Format OutputFormat `json:"format" yaml:"format"`

	// Color controls colored output.
	Color ColorMode `json:"color" yaml:"color"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `json:"-" yaml:"-"`

	// Check reports files that would change without writing them.
	Check bool `json:"-" yaml:"-"`

	// Diff prints a unified diff of the changes.
	Diff bool `json:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `json:"-" yaml:"-"`
}

var _ layout.Config = (*Config)(nil)

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:        FlavorCommonMark,
		Width:         DefaultMaxWidth,
		TabSpaces:     DefaultTabSpaces,
		Bullet:        BulletDash,
		OrderedStyle:  OrderedAscending,
		ThematicBreak: DefaultThematicBreak,
		HardBreak:     HardBreakPreserve,
		MaxDepth:      DefaultMaxDepth,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// IndentUnit returns the number of columns one level of nesting adds.
func (c *Config) IndentUnit() int {
	return c.TabSpaces
}

// MaxWidth returns the maximum line width.
func (c *Config) MaxWidth() int {
	return c.Width
}
