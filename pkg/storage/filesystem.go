package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageStore persists photos in a flat directory on local disk.
type ImageStore struct {
	baseDir string
}

// NewImageStore ensures the directory exists and returns a handle.
func NewImageStore(baseDir string) (*ImageStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("image store directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &ImageStore{baseDir: baseDir}, nil
}

// Save writes the image bytes under the given filename and returns the name.
func (s *ImageStore) Save(filename string, data []byte) (string, error) {
	if err := os.WriteFile(s.Path(filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for a stored image.
func (s *ImageStore) Open(filename string) (*os.File, error) {
	file, err := os.Open(s.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	return file, nil
}

// Path resolves a filename inside the store. The base name is taken first so
// a crafted filename cannot escape the directory.
func (s *ImageStore) Path(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}

// Dir exposes the underlying directory, used to mount the raw-file routes.
func (s *ImageStore) Dir() string {
	return s.baseDir
}
