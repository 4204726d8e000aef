// Package memory is an in-memory BlobStore used by tests and local tooling.
package memory

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

const defaultBaseURL = "https://storage.test/media"

// Backend is an in-memory implementation of the adminmedia.BlobStore
// interface. It additionally counts calls so tests can assert on lifecycle
// ordering.
type Backend struct {
	mu          sync.RWMutex
	objects     map[string][]byte
	contentType map[string]string
	baseURL     string

	uploadCalls int
	deleteCalls int
}

// New creates an in-memory backend with a synthetic public base URL.
func New() *Backend {
	return NewWithBaseURL(defaultBaseURL)
}

// NewWithBaseURL creates an in-memory backend whose public URLs start with
// the given base.
func NewWithBaseURL(baseURL string) *Backend {
	return &Backend{
		objects:     make(map[string][]byte),
		contentType: make(map[string]string),
		baseURL:     strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload stores the object bytes under key.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, params adminmedia.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.uploadCalls++
	b.objects[key] = data
	ct := params.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	b.contentType[key] = ct
	return nil
}

// Delete removes the object at key. Missing objects are success.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.deleteCalls++
	delete(b.objects, key)
	delete(b.contentType, key)
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

// Has reports whether an object exists at key.
func (b *Backend) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.objects[key]
	return ok
}

// Data returns the stored bytes for key.
func (b *Backend) Data(key string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.objects[key]
	return data, ok
}

// ContentType returns the stored content type for key.
func (b *Backend) ContentType(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ct, ok := b.contentType[key]
	return ct, ok
}

// Len returns the number of stored objects.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}

// UploadCalls returns how many uploads were attempted.
func (b *Backend) UploadCalls() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.uploadCalls
}

// DeleteCalls returns how many deletes were attempted.
func (b *Backend) DeleteCalls() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.deleteCalls
}
