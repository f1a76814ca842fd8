package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore returned error: %v", err)
	}

	name, err := store.Save(bytes.NewReader([]byte("png-bytes")), "My Photo.PNG")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("stored name must carry the lowercased extension, got %q", name)
	}
	if strings.ContainsAny(name, "/\\") {
		t.Fatalf("stored name must be relative to the upload dir, got %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}

	// The temporary name (final name minus extension) must be gone.
	tmpName := strings.TrimSuffix(name, ".png")
	if _, err := os.Stat(filepath.Join(dir, tmpName)); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind: %v", err)
	}
}

func TestDiskStore_Save_NoExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore returned error: %v", err)
	}

	name, err := store.Save(bytes.NewReader([]byte("raw")), "cover")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if strings.Contains(name, ".") {
		t.Fatalf("expected no extension, got %q", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestDiskStore_Save_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore returned error: %v", err)
	}

	first, err := store.Save(bytes.NewReader([]byte("a")), "same.jpg")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	second, err := store.Save(bytes.NewReader([]byte("b")), "same.jpg")
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if first == second {
		t.Fatalf("uploads with the same original name must not collide")
	}
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewDiskStore(dir); err != nil {
		t.Fatalf("NewDiskStore returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload directory not created: %v", err)
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"photo.PNG":        ".png",
		"photo.jpg":        ".jpg",
		"archive.tar.gz":   ".gz",
		"noext":            "",
		"trailing.":        "",
		"dir/inside.webp":  ".webp",
		".hidden":          ".hidden",
		"":                 "",
	}
	for name, want := range cases {
		if got := extensionOf(name); got != want {
			t.Fatalf("extensionOf(%q) = %q, want %q", name, got, want)
		}
	}
}
