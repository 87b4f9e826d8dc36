// Package filestore provides the local file sink used for imported images.
package filestore

import (
	"os"

	"github.com/Dresse/eksponent-test/internal/errors"
)

// Interface is the narrow file collaborator consumed by the image
// materializer.
type Interface interface {
	EnsureDirectory(path string) error
	WriteReplacing(path string, data []byte) (string, error)
}

// DiskFileStore implements Interface on the local filesystem.
type DiskFileStore struct{}

// New returns a filestore backed by the local filesystem.
func New() *DiskFileStore {
	return &DiskFileStore{}
}

// EnsureDirectory creates the directory and any missing parents.
func (fs *DiskFileStore) EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			Context("operation", "ensure_directory").
			Context("path", path).
			Build()
	}
	return nil
}

// WriteReplacing writes data to path, overwriting any existing file. It
// returns the path the bytes were written to.
func (fs *DiskFileStore) WriteReplacing(path string, data []byte) (string, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.New(err).
			Component("filestore").
			Category(errors.CategoryFileIO).
			Context("operation", "write_replacing").
			Context("path", path).
			Build()
	}
	return path, nil
}
