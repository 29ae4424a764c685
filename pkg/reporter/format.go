package reporter

import "github.com/yaklabco/gomdfmt/pkg/config"

// Format is the report layout. Its values are validated with the rest of the
// configuration.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)
