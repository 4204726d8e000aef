package adminmedia_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

func TestKindFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        adminmedia.MediaKind
		wantErr     bool
	}{
		{"image/jpeg", adminmedia.KindImage, false},
		{"image/png", adminmedia.KindImage, false},
		{"image/webp", adminmedia.KindImage, false},
		{"video/mp4", adminmedia.KindVideo, false},
		{"video/webm", adminmedia.KindVideo, false},
		{"application/pdf", "", true},
		{"text/plain", "", true},
		{"", "", true},
		// Family prefix only; no extension guessing.
		{"imagejpeg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			kind, err := adminmedia.KindFromContentType(tt.contentType)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, adminmedia.ErrUnsupportedMediaKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, kind)
			}
		})
	}
}

func TestRecordMedia(t *testing.T) {
	t.Run("news without image", func(t *testing.T) {
		a := adminmedia.NewsArticle{Title: "T"}
		assert.Nil(t, a.Media())
	})

	t.Run("news with image", func(t *testing.T) {
		a := adminmedia.NewsArticle{
			ImageURL:  "https://storage.test/media/imagenes_noticias/x.jpg",
			ImagePath: "imagenes_noticias/x.jpg",
		}
		media := a.Media()
		require.NotNil(t, media)
		assert.Equal(t, adminmedia.KindImage, media.Kind)
		assert.Equal(t, "imagenes_noticias/x.jpg", media.StoragePath)
	})

	t.Run("promotion with video", func(t *testing.T) {
		p := adminmedia.Promotion{
			MediaURL:  "https://storage.test/media/videos_promos/v.mp4",
			MediaPath: "videos_promos/v.mp4",
			MediaKind: adminmedia.KindVideo,
		}
		media := p.Media()
		require.NotNil(t, media)
		assert.Equal(t, adminmedia.KindVideo, media.Kind)
	})
}

func TestPromotionIsCurrent(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	before := now.AddDate(0, -1, 0)
	after := now.AddDate(0, 1, 0)

	tests := []struct {
		name  string
		promo adminmedia.Promotion
		want  bool
	}{
		{"inactive", adminmedia.Promotion{IsActive: false}, false},
		{"active no dates", adminmedia.Promotion{IsActive: true}, true},
		{"within window", adminmedia.Promotion{IsActive: true, StartDate: &before, EndDate: &after}, true},
		{"not started", adminmedia.Promotion{IsActive: true, StartDate: &after}, false},
		{"already ended", adminmedia.Promotion{IsActive: true, EndDate: &before}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.promo.IsCurrent(now))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &adminmedia.ValidationError{
		Message: "validation failed",
		Fields:  map[string]string{"title": "required", "body": "required"},
	}
	assert.Equal(t, "validation failed (body: required; title: required)", err.Error())

	bare := &adminmedia.ValidationError{Message: "validation failed"}
	assert.Equal(t, "validation failed", bare.Error())
}
