package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	// Test basic write
	data := []byte("hello world")
	if err := AtomicWriteFile(testFile, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile error: %v", err)
	}

	// Verify content
	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(content) != "hello world" {
		t.Fatalf("Unexpected content: %s", content)
	}

	// Verify temp file was cleaned up
	tmpFile := testFile + ".tmp"
	if _, err := os.Stat(tmpFile); !os.IsNotExist(err) {
		t.Fatal("Temp file was not cleaned up")
	}
}

func TestAtomicWriteOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "settings.json")

	if err := AtomicWriteFile(testFile, []byte("first"), 0644); err != nil {
		t.Fatalf("First write error: %v", err)
	}
	if err := AtomicWriteFile(testFile, []byte("second"), 0644); err != nil {
		t.Fatalf("Second write error: %v", err)
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(content) != "second" {
		t.Fatalf("Unexpected content: %s", content)
	}
}

func TestAtomicWriteFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	if err := AtomicWriteFile(testFile, []byte("test data"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile error: %v", err)
	}

	if got := FileMode(testFile, 0); got != 0600 {
		t.Errorf("Expected mode 0600, got %o", got)
	}
}

func TestAtomicWriteFileReadOnlyDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod-based read-only directories are not reliable on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	tmpDir := t.TempDir()
	roDir := filepath.Join(tmpDir, "readonly")
	if err := os.Mkdir(roDir, 0555); err != nil {
		t.Fatalf("Mkdir error: %v", err)
	}
	defer os.Chmod(roDir, 0755) //nolint:errcheck

	if err := AtomicWriteFile(filepath.Join(roDir, "x.json"), []byte("{}"), 0644); err == nil {
		t.Fatal("expected error writing into read-only directory")
	}
}

func TestFileModeMissingFile(t *testing.T) {
	if got := FileMode(filepath.Join(t.TempDir(), "nope"), 0640); got != 0640 {
		t.Errorf("FileMode on missing file = %o, want default 0640", got)
	}
}

func TestAtomicWriteFileFollowsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	tmpDir := t.TempDir()
	dotfiles := filepath.Join(tmpDir, "dotfiles")
	if err := os.Mkdir(dotfiles, 0755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dotfiles, "settings.json")
	if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmpDir, "settings.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(link, []byte("new"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile error: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink was replaced by a regular file")
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new" {
		t.Errorf("link target content = %q, want %q", content, "new")
	}
}

func TestResolveLinkDangling(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "settings.json")
	if err := os.Symlink("real.json", link); err != nil {
		t.Fatal(err)
	}

	if got, want := ResolveLink(link), filepath.Join(tmpDir, "real.json"); got != want {
		t.Errorf("ResolveLink = %q, want %q", got, want)
	}

	plain := filepath.Join(tmpDir, "plain")
	if got := ResolveLink(plain); got != plain {
		t.Errorf("ResolveLink(non-link) = %q", got)
	}
}
