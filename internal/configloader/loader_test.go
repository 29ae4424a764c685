package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
)

// newRepo creates a temporary directory marked as a VCS root so the project
// search never leaves it.
func newRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeConfig(t *testing.T, path, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		LookupEnv:          func(string) (string, bool) { return "", false },
	}
}

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newRepo(t)))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	path := writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"),
		"flavor: gfm\nmax_width: 100\nbackups:\n  enabled: true\n")
	nested := filepath.Join(repo, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, config.FlavorGFM, result.Config.Flavor)
	assert.Equal(t, 100, result.Config.Width)
	assert.True(t, result.Config.Backups.Enabled)
	assert.Equal(t, "sidecar", result.Config.Backups.Mode, "unset nested keys keep their defaults")
	assert.Equal(t, config.DefaultTabSpaces, result.Config.TabSpaces)
}

func TestLoad_ExplicitConfigReplacesProject(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"), "max_width: 100\nverify: true\n")
	explicit := writeConfig(t, filepath.Join(repo, "ci", "fmt.yml"), "max_width: 72\n")

	opts := isolated(repo)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{explicit}, result.LoadedFrom)
	assert.Equal(t, 72, result.Config.Width)
	assert.False(t, result.Config.Verify)
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(newRepo(t))
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFile_LaterFileTurnsBooleanOff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeConfig(t, filepath.Join(dir, "a.yml"), "verify: true\nbullet: \"*\"\n")
	second := writeConfig(t, filepath.Join(dir, "b.yml"), "verify: false\n")

	cfg := config.NewConfig()
	origins := map[string]origin{}
	_, err := applyFile(cfg, first, origins)
	require.NoError(t, err)
	_, err = applyFile(cfg, second, origins)
	require.NoError(t, err)

	assert.False(t, cfg.Verify)
	assert.Equal(t, config.BulletStar, cfg.Bullet)
	assert.Equal(t, origin{path: second, line: 1}, origins["verify"])
	assert.Equal(t, origin{path: first, line: 2}, origins["bullet"])
}

func TestLoad_EnvAndCLIPrecedence(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"), "max_width: 100\ntab_spaces: 4\n")

	opts := isolated(repo)
	opts.LookupEnv = envOf(map[string]string{
		"GOMDFMT_MAX_WIDTH": "60",
		"GOMDFMT_VERIFY":    "true",
		"GOMDFMT_IGNORE":    "build, dist,,tmp ",
		"GOMDFMT_JOBS":      "",
	})
	opts.CLIConfig = &config.Config{Width: 40}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 40, result.Config.Width)
	assert.Equal(t, 4, result.Config.TabSpaces)
	assert.True(t, result.Config.Verify)
	assert.Equal(t, []string{"build", "dist", "tmp"}, result.Config.Ignore)
	assert.Equal(t, 0, result.Config.Jobs)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Parallel()

	opts := isolated(newRepo(t))
	opts.LookupEnv = envOf(map[string]string{"GOMDFMT_MAX_WIDTH": "wide"})

	_, err := Load(context.Background(), opts)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "GOMDFMT_MAX_WIDTH")
}

func TestLoad_ValidationErrorPointsAtFile(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	path := writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"), "flavor: gfm\ntab_spaces: 9\n")

	_, err := Load(context.Background(), isolated(repo))
	require.ErrorIs(t, err, ErrInvalidConfig)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "tab_spaces", verr.Field)
	assert.Equal(t, path, verr.FilePath)
	assert.Equal(t, 2, verr.Line)
	assert.Equal(t, path+":2: tab_spaces: tab_spaces must be between 1 and 4", verr.Error())
}

func TestLoad_YAMLErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"type mismatch", "flavor: gfm\nmax_width: wide\n", 2},
		{"not a mapping", "- a\n- b\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t)
			path := writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"), tt.content)

			_, err := Load(context.Background(), isolated(repo))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, path, verr.FilePath)
			assert.Equal(t, tt.line, verr.Line)
		})
	}
}

func TestLoad_UnknownKeyWarns(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	path := writeConfig(t, filepath.Join(repo, ".gomdfmt.yml"), "max_width: 90\nwrap: true\n")

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, path+`:2: unknown key "wrap" is ignored`, result.Warnings[0])
	assert.Equal(t, 90, result.Config.Width)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeConfig(t, filepath.Join(outer, ".gomdfmt.yml"), "max_width: 50\n")
	repo := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	repo := newRepo(t)
	writeConfig(t, filepath.Join(repo, "gomdfmt.yaml"), "")
	preferred := writeConfig(t, filepath.Join(repo, ".gomdfmt.yaml"), "")

	found, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, preferred, found)
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Verify = true
	base.Ignore = []string{"vendor"}

	merged := merge(base, &config.Config{Width: 60, Bullet: config.BulletPlus, Write: true})

	assert.Equal(t, 60, merged.Width)
	assert.Equal(t, config.BulletPlus, merged.Bullet)
	assert.True(t, merged.Verify, "false never overrides")
	assert.True(t, merged.Write)
	assert.Equal(t, []string{"vendor"}, merged.Ignore)
	assert.Equal(t, config.DefaultMaxWidth, base.Width, "base is not modified")

	assert.Equal(t, base, merge(base, nil))
	assert.Nil(t, MergeAll())
	assert.Equal(t, 70, MergeAll(nil, base, &config.Config{Width: 70}).Width)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"flavor", func(c *config.Config) { c.Flavor = "markdown" }, "flavor"},
		{"bullet", func(c *config.Config) { c.Bullet = "o" }, "bullet"},
		{"ordered style", func(c *config.Config) { c.OrderedStyle = "roman" }, "ordered_style"},
		{"hard break", func(c *config.Config) { c.HardBreak = "html" }, "hard_break"},
		{"format", func(c *config.Config) { c.Format = "sarif" }, "format"},
		{"color", func(c *config.Config) { c.Color = "sometimes" }, "color"},
		{"backup mode", func(c *config.Config) { c.Backups.Mode = "xdg" }, "backups.mode"},
		{"width", func(c *config.Config) { c.Width = 0 }, "max_width"},
		{"tab spaces low", func(c *config.Config) { c.TabSpaces = 0 }, "tab_spaces"},
		{"tab spaces high", func(c *config.Config) { c.TabSpaces = 5 }, "tab_spaces"},
		{"max depth", func(c *config.Config) { c.MaxDepth = 0 }, "max_depth"},
		{"jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"thematic break", func(c *config.Config) { c.ThematicBreak = "==" }, "thematic_break"},
		{"ignore glob", func(c *config.Config) { c.Ignore = []string{"ok", "[unclosed"} }, "ignore[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.Valid())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.ErrorIs(t, &result.Errors[0], ErrInvalidConfig)
		})
	}

	assert.True(t, Validate(config.NewConfig()).Valid())
	assert.True(t, Validate(nil).Valid())
}

func TestIsThematicBreak(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"---", "***", "___", "- - -", "   *****", "_\t_ _"} {
		assert.True(t, isThematicBreak(text), "%q", text)
	}
	for _, text := range []string{"", "--", "-*-", "    ---", "--- x", "==="} {
		assert.False(t, isThematicBreak(text), "%q", text)
	}
}

func TestEnvVars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GOMDFMT_MAX_WIDTH", EnvVarName("max_width"))
	assert.Equal(t, "GOMDFMT_BACKUPS_MODE", EnvVarName("backups.mode"))
	assert.Empty(t, EnvVarName("rules"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envVars))
	assert.Contains(t, vars, "GOMDFMT_FLAVOR")

	cfg := config.NewConfig()
	require.NoError(t, applyEnv(cfg, envOf(map[string]string{
		"GOMDFMT_BULLET":          "+",
		"GOMDFMT_BACKUPS_ENABLED": "1",
		"GOMDFMT_INCLUDE":         "docs/**",
	})))
	assert.Equal(t, config.BulletPlus, cfg.Bullet)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, []string{"docs/**"}, cfg.Include)

	err := applyEnv(cfg, envOf(map[string]string{"GOMDFMT_VERIFY": "maybe"}))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
