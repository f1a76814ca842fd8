// Package storage persists uploaded cover images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes covers into a single shared directory. Files are written
// under a random temporary name and then renamed to carry the original
// extension; the rename is the only filesystem mutation and is not
// transactional with the database insert that records the path. A crash
// between the two leaves an orphaned file, which is accepted.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams src to disk and returns the stored file name (relative to the
// upload directory) for use as the post's cover path.
func (s *DiskStore) Save(src io.Reader, originalName string) (string, error) {
	tmpName := uuid.NewString()
	tmpPath := filepath.Join(s.dir, tmpName)

	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("store cover: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("store cover: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("store cover: %w", err)
	}

	finalName := tmpName + extensionOf(originalName)
	if err := os.Rename(tmpPath, filepath.Join(s.dir, finalName)); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("store cover: %w", err)
	}
	return finalName, nil
}

// extensionOf extracts a lowercase ".ext" suffix, or "" when the original
// name carries none.
func extensionOf(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "." {
		return ""
	}
	return strings.ToLower(ext)
}
