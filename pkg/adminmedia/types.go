package adminmedia

import (
	"fmt"
	"strings"
	"time"
)

// MediaKind is the domain type for attachment media families.
type MediaKind string

// Media kind constants (typed).
const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// KindFromContentType infers the media kind from a declared MIME type.
// Only the content-type family is consulted, never the file extension.
func KindFromContentType(contentType string) (MediaKind, error) {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo, nil
	case strings.HasPrefix(contentType, "image/"):
		return KindImage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaKind, contentType)
	}
}

// MediaAsset is the (url, storagePath, kind) triple for one stored file.
// It has no identity of its own: it exists only embedded on a parent record.
type MediaAsset struct {
	URL         string    `json:"url"`
	StoragePath string    `json:"storagePath"`
	Kind        MediaKind `json:"kind"`
}

// NewsArticle is a back-office news record with at most one attached image.
type NewsArticle struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"isActive"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ImagePath   string     `json:"imagePath,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Media returns the article's attachment, or nil when it has none.
func (a *NewsArticle) Media() *MediaAsset {
	if a.ImageURL == "" {
		return nil
	}
	return &MediaAsset{URL: a.ImageURL, StoragePath: a.ImagePath, Kind: KindImage}
}

// Promotion is a promotional banner or video slot. Media is required on
// create and may be either kind.
type Promotion struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	MediaURL    string     `json:"mediaUrl,omitempty"`
	MediaPath   string     `json:"mediaPath,omitempty"`
	MediaKind   MediaKind  `json:"mediaKind,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Media returns the promotion's attachment, or nil when it has none.
func (p *Promotion) Media() *MediaAsset {
	if p.MediaURL == "" {
		return nil
	}
	return &MediaAsset{URL: p.MediaURL, StoragePath: p.MediaPath, Kind: p.MediaKind}
}

// IsCurrent reports whether the promotion should be shown at the given
// instant: active, started, and not yet ended. Missing dates are open ends.
func (p *Promotion) IsCurrent(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return false
	}
	return true
}
