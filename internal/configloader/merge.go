package configloader

import "github.com/yaklabco/gomdfmt/pkg/config"

// merge overlays override on base and returns the result; neither input is
// modified. A zero value in override means "unset": strings, numbers and
// false booleans never replace base, and nil slices keep base's slice.
// File layers do not go through merge; they are decoded over the merged
// configuration so a file can also turn a boolean off.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	result := base.Clone()
	if override == nil {
		return result
	}

	setString(&result.Flavor, override.Flavor)
	setString(&result.Bullet, override.Bullet)
	setString(&result.OrderedStyle, override.OrderedStyle)
	setString(&result.ThematicBreak, override.ThematicBreak)
	setString(&result.HardBreak, override.HardBreak)
	setString(&result.Format, override.Format)
	setString(&result.Color, override.Color)
	setString(&result.Backups.Mode, override.Backups.Mode)

	setInt(&result.Width, override.Width)
	setInt(&result.TabSpaces, override.TabSpaces)
	setInt(&result.MaxDepth, override.MaxDepth)
	setInt(&result.Jobs, override.Jobs)

	result.InferFenceLanguage = result.InferFenceLanguage || override.InferFenceLanguage
	result.Verify = result.Verify || override.Verify
	result.FollowSymlinks = result.FollowSymlinks || override.FollowSymlinks
	result.Backups.Enabled = result.Backups.Enabled || override.Backups.Enabled
	result.Write = result.Write || override.Write
	result.Check = result.Check || override.Check
	result.Diff = result.Diff || override.Diff
	result.NoBackups = result.NoBackups || override.NoBackups

	if override.Include != nil {
		result.Include = append([]string(nil), override.Include...)
	}
	if override.Exclude != nil {
		result.Exclude = append([]string(nil), override.Exclude...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

func setString[T ~string](dst *T, value T) {
	if value != "" {
		*dst = value
	}
}

func setInt(dst *int, value int) {
	if value != 0 {
		*dst = value
	}
}

// MergeAll merges configs left to right; later configs take precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		result = merge(result, cfg)
	}
	return result
}
