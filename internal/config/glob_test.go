package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()

	fileA := filepath.Join(dir, "a.log")
	fileB := filepath.Join(dir, "b.log")
	fileC := filepath.Join(dir, "c.txt")

	for _, path := range []string{fileA, fileB, fileC} {
		if err := os.WriteFile(path, []byte("test"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	files, err = ExpandGlobs([]string{fileC, fileA, filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	want := []string{fileA, fileB, fileC}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestExpandGlobsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ExpandGlobs(nil); !errors.Is(err, ErrNoPatterns) {
		t.Errorf("empty list: error = %v, want ErrNoPatterns", err)
	}
	if _, err := ExpandGlobs([]string{filepath.Join(dir, "*.missing")}); err == nil {
		t.Error("expected error for unmatched glob")
	}
	if _, err := ExpandGlobs([]string{filepath.Join(dir, "missing.log")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: error = %v, want ErrNotExist", err)
	}
	if _, err := ExpandGlobs([]string{dir}); err == nil {
		t.Error("expected error for a directory")
	}
}
