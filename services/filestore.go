// file: services/filestore.go
package services

import (
	"io"
	"os"
	"path/filepath"
)

// FileStore keeps opaque blobs under caller-chosen keys. Keys are UUIDs
// generated by the caller, never user input.
type FileStore interface {
	Save(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// DiskFileStore stores blobs as flat files under a base directory.
type DiskFileStore struct {
	BaseDir string
}

func NewDiskFileStore() *DiskFileStore {
	dir := os.Getenv("HYPERION_FILE_DIR")
	if dir == "" {
		dir = "./data/files"
	}
	return &DiskFileStore{BaseDir: dir}
}

func (s *DiskFileStore) path(key string) string {
	return filepath.Join(s.BaseDir, filepath.Base(key))
}

func (s *DiskFileStore) Save(key string, r io.Reader) error {
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

func (s *DiskFileStore) Open(key string) (io.ReadCloser, error) {
	return os.Open(s.path(key))
}

func (s *DiskFileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
