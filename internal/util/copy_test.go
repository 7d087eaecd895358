package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"
)

func TestCopyFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"hooks/a.py": {Data: []byte("print('a')\n")},
	}
	dst := filepath.Join(t.TempDir(), "a.py")

	if err := CopyFromFS(fsys, "hooks/a.py", dst, 0755); err != nil {
		t.Fatalf("CopyFromFS: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "print('a')\n" {
		t.Errorf("content = %q", got)
	}
	if runtime.GOOS != "windows" {
		if mode := FileMode(dst, 0); mode != 0755 {
			t.Errorf("mode = %o, want 0755", mode)
		}
	}
}

func TestCopyFromFSMissing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "x")
	if err := CopyFromFS(fstest.MapFS{}, "nope", dst, 0644); err == nil {
		t.Fatal("expected error for missing source")
	}
	if FileExists(dst) {
		t.Error("destination created for missing source")
	}
}

func TestCopyFileOverwritesAndResetsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old content"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst, 0755); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
	if mode := FileMode(dst, 0); mode != 0755 {
		t.Errorf("mode = %o, want 0755", mode)
	}
}
