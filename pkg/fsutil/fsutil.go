// Package fsutil reads and writes the Markdown files gomdfmt formats. Writes
// are atomic, and a file that changed on disk while it was being formatted is
// detected before it is overwritten.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo records the state of a file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits, reused when writing.
	Mode os.FileMode

	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// ReadFile reads a file and records its state for CheckModified.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file described by info changed since it
// was read. Modification time and size are compared first; with strict set an
// unchanged file is also re-read and hashed. A deleted file counts as
// modified.
func CheckModified(ctx context.Context, info *FileInfo, strict bool) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}
	if !strict {
		return false, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
