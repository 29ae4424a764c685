package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option. If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// optionDoc describes one configuration key for the full template.
type optionDoc struct {
	Key         string
	Value       string
	Description string
}

// optionDocs lists the documented options in template order.
//
//nolint:gochecknoglobals // Static documentation table.
var optionDocs = []optionDoc{
	{"flavor", "commonmark", "Markdown flavor used to parse documents: commonmark or gfm. GFM adds tables, strikethrough, task lists and autolinks."},
	{"max_width", "80", "Maximum line width. Paragraphs are re-flowed to fit; blocks that cannot fit are left exactly as written."},
	{"tab_spaces", "2", "Columns added by one level of nesting (1-4). List content starts at the first multiple of this value past the marker."},
	{"bullet", "\"-\"", "Marker for unordered list items: \"-\", \"*\", \"+\" or preserve."},
	{"ordered_style", "ascending", "Numbering of ordered lists: one (every item uses the start number), ascending or preserve."},
	{"thematic_break", "\"---\"", "Text written for thematic breaks."},
	{"hard_break", "preserve", "How hard line breaks are written: preserve, backslash or spaces."},
	{"infer_fence_language", "false", "Add a detected language to code fences that have no info string."},
	{"max_depth", "64", "Deepest block nesting that is still reformatted."},
	{"verify", "false", "Format the output a second time and skip files whose formatting is not stable."},
	{"jobs", "0", "Number of parallel workers (0 = number of CPUs)."},
	{"follow_symlinks", "false", "Follow symbolic links during file discovery."},
	{"format", "text", "Report format: text, json, diff or summary."},
	{"color", "auto", "Colored output: auto, always or never."},
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == EncodingJSON {
		return Encode(templateDefaults(), EncodingJSON)
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Maximum line width
max_width: 80

# Columns per nesting level (1-4)
# tab_spaces: 2

# Unordered list marker: "-", "*", "+" or preserve
# bullet: "-"

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Create a backup next to each rewritten file
# backups:
#   enabled: false
#   mode: sidecar
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template documenting every option.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n#\n# Every option is listed with its default value.\n")

	for _, doc := range optionDocs {
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(doc.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "\n%s: %s\n", doc.Key, doc.Value)
	}

	buf.WriteString(`
# Glob patterns a file must match to be formatted (empty = all Markdown files)
include: []

# Glob patterns for files that are never formatted
exclude: []

# Glob patterns for files and directories skipped during discovery
ignore:
  - "vendor/**"
  - "node_modules/**"

# Backups written before a file is rewritten
backups:
  enabled: false
  mode: sidecar
`)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// templateDefaults is the configuration the JSON template spells out.
func templateDefaults() *Config {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}
	return cfg
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdfmt configuration
# See: https://github.com/yaklabco/gomdfmt`
}
