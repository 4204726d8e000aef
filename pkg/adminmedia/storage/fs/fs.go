// Package fs is a filesystem BlobStore for local development, storing
// objects under a base directory and serving URLs from a configured prefix.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

// Config options for the filesystem backend.
type Config struct {
	BaseDir string // directory objects are written under
	BaseURL string // address prefix public URLs are built from
}

// Backend is a filesystem implementation of the adminmedia.BlobStore
// interface.
type Backend struct {
	baseDir string
	baseURL string
}

// New creates a filesystem storage backend, creating BaseDir if needed.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &Backend{
		baseDir: config.BaseDir,
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

// Upload writes the object under the base directory, creating the folder
// namespace on demand.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, params adminmedia.UploadParams) error {
	path, err := b.objectPath(key)
	if err != nil {
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "upload", Err: err}
	}
	return nil
}

// Delete removes the object at key. A missing object is success. Folder
// directories left empty are pruned.
func (b *Backend) Delete(ctx context.Context, key string) error {
	path, err := b.objectPath(key)
	if err != nil {
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "delete", Err: err}
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &adminmedia.StorageError{Backend: "fs", Key: key, Op: "delete", Err: err}
	}

	b.pruneEmptyDirs(filepath.Dir(path))
	return nil
}

// PublicURL derives the public address for key.
func (b *Backend) PublicURL(key string) string {
	return b.baseURL + "/" + key
}

// KeyFromURL recovers the storage key from a URL this backend produced.
func (b *Backend) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, b.baseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(rawURL, b.baseURL+"/"), true
}

// objectPath maps a storage key to a file path, confined to the base
// directory.
func (b *Backend) objectPath(key string) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	path := filepath.Join(b.baseDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(b.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key %q escapes base directory", key)
	}
	return path, nil
}

// pruneEmptyDirs removes empty directories up to, but never including, the
// base directory.
func (b *Backend) pruneEmptyDirs(dir string) {
	for dir != b.baseDir {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if os.Remove(dir) != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
