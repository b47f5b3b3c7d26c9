package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes photos to a local directory served as static files.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *DiskStore) Save(_ context.Context, name string, reader io.Reader, size int64, _ string) (string, error) {
	file, err := os.Create(filepath.Join(s.Dir, name))

	if err != nil {
		return "", err
	}

	defer file.Close()

	if _, err := io.CopyN(file, reader, size); err != nil && err != io.EOF {
		os.Remove(file.Name())
		return "", err
	}

	return s.BaseURL + "/" + name, nil
}
