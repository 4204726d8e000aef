package adminmedia

import (
	"context"
	"io"
)

// BlobStore defines the interface for blob-bucket backends.
type BlobStore interface {
	// Upload writes the object at key. Either the object exists at key
	// afterwards or it does not; partial uploads are not retried here.
	Upload(ctx context.Context, key string, reader io.Reader, params UploadParams) error

	// Delete removes the object at key. Deleting a key that does not exist
	// is success, so callers may retry or double-delete freely.
	Delete(ctx context.Context, key string) error

	// PublicURL derives the publicly fetchable address for key. Pure; no
	// network call.
	PublicURL(key string) string

	// KeyFromURL recovers the storage key from a public URL produced by
	// this backend. Used only for records whose path field was never
	// persisted by older tooling.
	KeyFromURL(rawURL string) (string, bool)
}

// UploadParams carries per-object upload attributes.
type UploadParams struct {
	ContentType string
	Size        int64
}

// NewsAPI is the metadata REST surface for news articles.
type NewsAPI interface {
	ListNews(ctx context.Context) ([]NewsArticle, error)
	GetNews(ctx context.Context, id string) (*NewsArticle, error)
	CreateNews(ctx context.Context, req CreateNewsRequest) (*NewsArticle, error)
	UpdateNews(ctx context.Context, id string, req UpdateNewsRequest) (*NewsArticle, error)
	DeleteNews(ctx context.Context, id string) error
}

// PromotionAPI is the metadata REST surface for promotions.
type PromotionAPI interface {
	ListPromotions(ctx context.Context) ([]Promotion, error)
	GetPromotion(ctx context.Context, id string) (*Promotion, error)
	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*Promotion, error)
	UpdatePromotion(ctx context.Context, id string, req UpdatePromotionRequest) (*Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
}
