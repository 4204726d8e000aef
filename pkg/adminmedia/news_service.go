package adminmedia

import (
	"context"

	"go.uber.org/zap"
)

// Owner hints used in storage paths when no record id exists yet.
const (
	newsOwnerTag      = "noticia"
	promotionOwnerTag = "promo"
)

// NewsService sequences blob and metadata operations for news articles into
// single consistent actions. The metadata write is the commit point: blobs
// are uploaded before it and superseded blobs removed only after it.
type NewsService struct {
	api   NewsAPI
	media *AttachmentStore
	log   *zap.Logger
}

// NewNewsService creates a news orchestrator. A nil logger disables cleanup
// diagnostics.
func NewNewsService(api NewsAPI, media *AttachmentStore, log *zap.Logger) *NewsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NewsService{api: api, media: media, log: log}
}

// List fetches all news articles.
func (s *NewsService) List(ctx context.Context) ([]NewsArticle, error) {
	return s.api.ListNews(ctx)
}

// Get fetches one news article by id.
func (s *NewsService) Get(ctx context.Context, id string) (*NewsArticle, error) {
	return s.api.GetNews(ctx, id)
}

// Create stores the article, uploading the optional image first so the
// record never references a blob that does not exist. A failed upload aborts
// the create; a failed create leaves at worst an orphaned blob, which is
// removed best-effort.
func (s *NewsService) Create(ctx context.Context, req CreateNewsRequest, file *File) (*NewsArticle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var asset *MediaAsset
	if file != nil {
		var err error
		asset, err = s.media.Upload(ctx, *file, newsOwnerTag)
		if err != nil {
			return nil, err
		}
		req.ImageURL = asset.URL
		req.ImagePath = asset.StoragePath
	}

	created, err := s.api.CreateNews(ctx, req)
	if err != nil {
		if asset != nil {
			s.discard(ctx, asset.StoragePath)
		}
		return nil, err
	}
	return created, nil
}

// Update replaces the article's fields. With a new file the upload happens
// first, then the metadata update, and only after that commits is the
// previous blob removed best-effort. With RemoveImage set the reference is
// cleared and the detached blob removed the same way.
func (s *NewsService) Update(ctx context.Context, id string, req UpdateNewsRequest, newFile *File) (*NewsArticle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var prevKey string
	if newFile != nil || req.RemoveImage {
		prev, err := s.api.GetNews(ctx, id)
		if err != nil {
			return nil, err
		}
		prevKey = s.media.ResolveKey(prev.ImagePath, prev.ImageURL)
	}

	var asset *MediaAsset
	if newFile != nil {
		var err error
		asset, err = s.media.Upload(ctx, *newFile, id)
		if err != nil {
			return nil, err
		}
		req.setImage(asset)
	} else if req.RemoveImage {
		req.clearImage()
	}

	updated, err := s.api.UpdateNews(ctx, id, req)
	if err != nil {
		if asset != nil {
			s.discard(ctx, asset.StoragePath)
		}
		return nil, err
	}

	if prevKey != "" && (asset == nil || prevKey != asset.StoragePath) {
		s.discard(ctx, prevKey)
	}
	return updated, nil
}

// Delete removes the article and then, best-effort, its attached blob.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	rec, err := s.api.GetNews(ctx, id)
	if err != nil {
		return err
	}

	if err := s.api.DeleteNews(ctx, id); err != nil {
		return err
	}

	s.discard(ctx, s.media.ResolveKey(rec.ImagePath, rec.ImageURL))
	return nil
}

// discard is the non-critical cleanup sink: failures go to the log, never to
// the caller.
func (s *NewsService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Remove(ctx, key); err != nil {
		s.log.Warn("news blob cleanup failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
