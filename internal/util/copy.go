package util

import (
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileExists reports whether path exists (file or directory).
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopyFromFS copies name out of fsys to dst and then sets dst's mode to perm.
// dst is overwritten if it exists.
func CopyFromFS(fsys fs.FS, name, dst string, perm os.FileMode) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	return writeFrom(src, dst, perm)
}

// CopyFile copies the file at src to dst with mode perm.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return writeFrom(in, dst, perm)
}

func writeFrom(r io.Reader, dst string, perm os.FileMode) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile leaves the mode of an existing file untouched.
	return os.Chmod(dst, perm)
}
