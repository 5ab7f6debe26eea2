// Package ioutils provides file system utilities for lutris-art-fetcher.
//
// This package contains functions for:
//   - Crash-safe file writing
//   - Existence checks
//   - Filename sanitization
//   - Directory creation
package ioutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// StorageError reports a failed file system step while persisting a file.
//
// Op is one of "mkdir", "write" or "rename".
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed: %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WriteFileAtomic writes data to path so that readers of path never observe
// a partial file.
//
// Parent directories are created as needed (mode 0755). The data goes to a
// temporary file in the same directory, is synced, and is then renamed onto
// path. The temporary file is removed on any failure. When two writers race
// the last rename wins and the result is always one complete payload.
//
// Example:
//
//	err := WriteFileAtomic(ctx, "/home/me/.local/share/lutris/coverart/hades.jpg", data)
func WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	// Art files should be world readable like the ones Lutris writes itself.
	return WriteFileAtomicMode(ctx, path, data, 0644)
}

// WriteFileAtomicMode is WriteFileAtomic with an explicit permission for the
// final file.
func WriteFileAtomicMode(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return &StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	multipleSpace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file
// names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Lutris slugs are already safe; this guards against a hand-edited database
// pointing a write outside the art directories.
//
// Example:
//
//	SanitizeFileName("../etc/passwd") // Returns "_etc_passwd"
//	SanitizeFileName("hades")         // Returns "hades"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multipleSpace.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, ".")
	return name
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
