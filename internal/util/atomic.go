// Package util provides file and process helpers shared by the installer.
package util

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a file atomically.
// It first writes to a temporary file, then renames it to the target path.
// The rename operation is atomic on POSIX systems. When path is a symlink
// the file it points at is replaced and the link is left in place.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	path = ResolveLink(path)
	tmpFile := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tmpFile, data, perm); err != nil {
		return err
	}

	// WriteFile only applies perm on create; a stale temp file keeps its mode.
	if err := os.Chmod(tmpFile, perm); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	// Atomic rename (on POSIX systems)
	if err := os.Rename(tmpFile, path); err != nil {
		// Clean up temp file on failure
		_ = os.Remove(tmpFile)
		return err
	}

	return nil
}

// FileMode returns the permission bits of an existing file, or def when the
// file cannot be stat'ed.
func FileMode(path string, def os.FileMode) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return def
	}
	return info.Mode().Perm()
}

// ResolveLink follows symlinks at path to the file they name. A dangling
// link resolves to its (possibly missing) target; anything that is not a
// link comes back unchanged.
func ResolveLink(path string) string {
	for hops := 0; hops < 32; hops++ {
		info, err := os.Lstat(path)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return path
		}
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			return resolved
		}
		target, err := os.Readlink(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return path
}
