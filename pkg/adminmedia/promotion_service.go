package adminmedia

import (
	"context"

	"go.uber.org/zap"
)

// PromotionService sequences blob and metadata operations for promotions.
// Same commit-point contract as NewsService, with one extra rule: a
// promotion must always carry media, so a create needs either a pending file
// or an already-stored URL.
type PromotionService struct {
	api   PromotionAPI
	media *AttachmentStore
	log   *zap.Logger
}

// NewPromotionService creates a promotion orchestrator. A nil logger
// disables cleanup diagnostics.
func NewPromotionService(api PromotionAPI, media *AttachmentStore, log *zap.Logger) *PromotionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PromotionService{api: api, media: media, log: log}
}

// List fetches all promotions.
func (s *PromotionService) List(ctx context.Context) ([]Promotion, error) {
	return s.api.ListPromotions(ctx)
}

// Get fetches one promotion by id.
func (s *PromotionService) Get(ctx context.Context, id string) (*Promotion, error) {
	return s.api.GetPromotion(ctx, id)
}

// Create stores the promotion, uploading the file first when present. The
// create is rejected before any network call when neither a file nor an
// existing media URL is supplied.
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest, file *File) (*Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if file == nil && req.MediaURL == "" {
		return nil, &ValidationError{
			Message: "invalid promotion",
			Fields:  map[string]string{"media": "an image or video is required"},
		}
	}

	var asset *MediaAsset
	if file != nil {
		var err error
		asset, err = s.media.Upload(ctx, *file, promotionOwnerTag)
		if err != nil {
			return nil, err
		}
		req.MediaURL = asset.URL
		req.MediaPath = asset.StoragePath
		req.MediaKind = asset.Kind
	}

	created, err := s.api.CreatePromotion(ctx, req)
	if err != nil {
		if asset != nil {
			s.discard(ctx, asset.StoragePath)
		}
		return nil, err
	}
	return created, nil
}

// Update replaces the promotion's fields. A new file supersedes the current
// attachment: upload, commit the metadata update, then remove the previous
// blob best-effort. RemoveMedia clears the reference and removes the
// detached blob the same way.
func (s *PromotionService) Update(ctx context.Context, id string, req UpdatePromotionRequest, newFile *File) (*Promotion, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var prevKey string
	if newFile != nil || req.RemoveMedia {
		prev, err := s.api.GetPromotion(ctx, id)
		if err != nil {
			return nil, err
		}
		prevKey = s.media.ResolveKey(prev.MediaPath, prev.MediaURL)
	}

	var asset *MediaAsset
	if newFile != nil {
		var err error
		asset, err = s.media.Upload(ctx, *newFile, id)
		if err != nil {
			return nil, err
		}
		req.setMedia(asset)
	} else if req.RemoveMedia {
		req.clearMedia()
	}

	updated, err := s.api.UpdatePromotion(ctx, id, req)
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

// Delete removes the promotion and then, best-effort, its attached blob.
func (s *PromotionService) Delete(ctx context.Context, id string) error {
	rec, err := s.api.GetPromotion(ctx, id)
	if err != nil {
		return err
	}

	if err := s.api.DeletePromotion(ctx, id); err != nil {
		return err
	}

	s.discard(ctx, s.media.ResolveKey(rec.MediaPath, rec.MediaURL))
	return nil
}

func (s *PromotionService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.media.Remove(ctx, key); err != nil {
		s.log.Warn("promotion blob cleanup failed",
			zap.String("key", key),
			zap.Error(err))
	}
}
