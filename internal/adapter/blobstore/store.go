package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists opaque blobs and returns the URL they are served from.
// Receipt images are the only blobs the engine handles.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// FileStore keeps blobs on the local filesystem.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore creates the target directory if needed.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes the blob and returns its public URL.
func (s *FileStore) Save(_ context.Context, name, contentType string, data []byte) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	if ext := extensionFor(contentType); ext != "" && !strings.HasSuffix(name, ext) {
		name += ext
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
