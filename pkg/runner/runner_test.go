package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/format"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

func newRunner(cfg *config.Config) *runner.Runner {
	return runner.New(format.NewPipeline(format.NewEngine(cfg)))
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := format.NewPipeline(format.NewEngine(nil))
	assert.Same(t, pipeline, runner.New(pipeline).Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.False(t, result.HasChanges())
	assert.False(t, result.HasErrors())
}

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("* one\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("- two\n"), 0o644))

	cfg := config.NewConfig()
	result, err := newRunner(cfg).Run(context.Background(), runner.OptionsFromConfig(cfg, []string{dir}))
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), result.Files[0].Path)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.True(t, result.HasChanges())

	content, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "* one\n", string(content))
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := newRunner(cfg).Run(context.Background(), runner.OptionsFromConfig(cfg, []string{dir}))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one two\n", string(content))
}

func TestRunner_Run_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for idx := range 20 {
		name := filepath.Join(dir, fmt.Sprintf("doc%02d.md", idx))
		require.NoError(t, os.WriteFile(name, []byte(fmt.Sprintf("* item %d\n", idx)), 0o644))
	}

	run := func(jobs int) *runner.Result {
		opts := runner.Options{WorkingDir: dir, Jobs: jobs}
		result, err := newRunner(nil).Run(context.Background(), opts)
		require.NoError(t, err)
		return result
	}

	serial := run(1)
	parallel := run(8)

	require.Len(t, parallel.Files, len(serial.Files))
	for idx := range serial.Files {
		assert.Equal(t, serial.Files[idx].Path, parallel.Files[idx].Path)
		assert.Equal(t, serial.Files[idx].Result.Formatted, parallel.Files[idx].Result.Formatted)
	}
	assert.Equal(t, 20, parallel.Stats.FilesChanged)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(nil).Run(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasChanges())
	assert.False(t, result.HasErrors())
}
