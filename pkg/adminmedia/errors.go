package adminmedia

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error types
var (
	// ErrUnsupportedMediaKind indicates a file whose content type is neither
	// image/* nor video/*, or a kind the target record does not accept.
	// It is raised before any bucket write happens.
	ErrUnsupportedMediaKind = errors.New("unsupported media kind")

	// ErrUploadFailed indicates a blob upload failed; the enclosing record
	// operation is aborted and no metadata write is attempted.
	ErrUploadFailed = errors.New("upload failed")

	// ErrDeleteFailed indicates a blob delete failed on a genuine transport
	// error. Cleanup-side callers log and swallow it.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrNotFound indicates the metadata API reported 404 for a record.
	ErrNotFound = errors.New("record not found")
)

// StorageError reports a failed blob-store operation.
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response from the metadata API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// ValidationError carries the field-level error map from an HTTP 422
// response, or from client-side pre-submit validation.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}
