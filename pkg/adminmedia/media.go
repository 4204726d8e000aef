package adminmedia

import (
	"context"
	"fmt"
	"io"

	"github.com/habitara/admin-media/pkg/adminmedia/objectkey"
)

// Bucket folder namespaces. News and promotion uploads are deliberately kept
// apart so a cleanup in one namespace can never touch the other's objects.
const (
	FolderPromotionImages = "imagenes_promos"
	FolderPromotionVideos = "videos_promos"
	FolderNewsImages      = "imagenes_noticias"
)

// File is one locally selected file pending attachment.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AttachmentStore moves files in and out of the blob bucket for one resource
// type: it owns the folder namespace, the kind restrictions, and the storage
// path policy. It never touches metadata records.
type AttachmentStore struct {
	store       BlobStore
	keys        objectkey.Generator
	imageFolder string
	videoFolder string
	allowVideo  bool
}

// AttachmentOption configures an AttachmentStore.
type AttachmentOption func(*AttachmentStore)

// WithKeyGenerator overrides the storage path generator.
func WithKeyGenerator(g objectkey.Generator) AttachmentOption {
	return func(s *AttachmentStore) {
		s.keys = g
	}
}

// NewPromotionAttachments returns the attachment store for promotions:
// images and videos, each in its own folder.
func NewPromotionAttachments(store BlobStore, opts ...AttachmentOption) *AttachmentStore {
	s := &AttachmentStore{
		store:       store,
		keys:        objectkey.New(),
		imageFolder: FolderPromotionImages,
		videoFolder: FolderPromotionVideos,
		allowVideo:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNewsAttachments returns the attachment store for news articles, which
// accept images only.
func NewNewsAttachments(store BlobStore, opts ...AttachmentOption) *AttachmentStore {
	s := &AttachmentStore{
		store:       store,
		keys:        objectkey.New(),
		imageFolder: FolderNewsImages,
		videoFolder: FolderNewsImages,
		allowVideo:  false,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates the file's media kind, writes it to the bucket, and
// returns the resulting asset. On any failure nothing addressable is left
// behind and ErrUploadFailed (or ErrUnsupportedMediaKind, before any write)
// is returned.
func (s *AttachmentStore) Upload(ctx context.Context, file File, ownerHint string) (*MediaAsset, error) {
	kind, err := KindFromContentType(file.ContentType)
	if err != nil {
		return nil, err
	}
	if kind == KindVideo && !s.allowVideo {
		return nil, fmt.Errorf("%w: video not accepted here", ErrUnsupportedMediaKind)
	}

	folder := s.imageFolder
	if kind == KindVideo {
		folder = s.videoFolder
	}
	key := s.keys.GenerateKey(folder, ownerHint, file.Name)

	err = s.store.Upload(ctx, key, file.Reader, UploadParams{
		ContentType: file.ContentType,
		Size:        file.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return &MediaAsset{
		URL:         s.store.PublicURL(key),
		StoragePath: key,
		Kind:        kind,
	}, nil
}

// Remove deletes the blob at key. Idempotent: a missing object is success.
// An empty key is a no-op.
func (s *AttachmentStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return nil
}

// ResolveKey returns the storage key for a stored attachment: the persisted
// path when present, otherwise the key recovered from the public URL.
func (s *AttachmentStore) ResolveKey(storagePath, url string) string {
	if storagePath != "" {
		return storagePath
	}
	if url == "" {
		return ""
	}
	if key, ok := s.store.KeyFromURL(url); ok {
		return key
	}
	return ""
}
