package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/docs/a.md.gomdfmt.bak", fsutil.BackupPath("/docs/a.md", fsutil.BackupModeSidecar))
	assert.Equal(t, "/docs/a.md.gomdfmt.bak", fsutil.BackupPath("/docs/a.md", "other"))
	assert.Empty(t, fsutil.BackupPath("/docs/a.md", fsutil.BackupModeNone))
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, cfg.Mode)
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("copies original", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "original\n")
		created, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))

		got, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
		require.NoError(t, err)
		assert.Equal(t, "original\n", string(got))
	})

	t.Run("keeps first backup", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "first\n")
		_, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("second\n"), 0644))
		created, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.False(t, created)

		got, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
		require.NoError(t, err)
		assert.Equal(t, "first\n", string(got))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "doc.md", "x\n")
		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			created, err := fsutil.CreateBackup(ctx, path, cfg)
			require.NoError(t, err)
			assert.False(t, created)
		}
		assert.False(t, fsutil.BackupExists(path, fsutil.BackupModeSidecar))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(ctx, t.TempDir()+"/none.md", enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
