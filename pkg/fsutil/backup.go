package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the file, named with
	// BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to name its sidecar backup.
const BackupSuffix = ".gomdfmt.bak"

// BackupConfig controls backup behavior when files are written.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path is stored, or "" when mode
// stores none. Unknown modes use the sidecar location.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// BackupExists reports whether a backup of path exists.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}

// CreateBackup copies path to its backup location before it is rewritten.
// An existing backup is never overwritten, so it keeps the content from
// before the first run. The result reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}
	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
