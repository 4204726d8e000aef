package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(Config{Endpoint: "localhost:9000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")

	_, err = New(Config{Bucket: "media"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}

func TestPublicBase(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "internal endpoint plain http",
			config: Config{Bucket: "media", Endpoint: "localhost:9000"},
			want:   "http://localhost:9000/media",
		},
		{
			name:   "internal endpoint with ssl",
			config: Config{Bucket: "media", Endpoint: "minio.internal:9000", UseSSL: true},
			want:   "https://minio.internal:9000/media",
		},
		{
			name: "public endpoint behind proxy",
			config: Config{
				Bucket:         "media",
				Endpoint:       "minio.internal:9000",
				PublicEndpoint: "storage.habitara.mx",
				PublicUseSSL:   true,
			},
			want: "https://storage.habitara.mx/media",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBase(tt.config))
		})
	}
}

func TestPublicURLAndKeyFromURL(t *testing.T) {
	b, err := New(Config{
		Bucket:         "media",
		Endpoint:       "minio.internal:9000",
		PublicEndpoint: "storage.habitara.mx",
		PublicUseSSL:   true,
	})
	require.NoError(t, err)

	url := b.PublicURL("videos_promos/promo-1-abc.mp4")
	assert.Equal(t, "https://storage.habitara.mx/media/videos_promos/promo-1-abc.mp4", url)

	key, ok := b.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "videos_promos/promo-1-abc.mp4", key)

	_, ok = b.KeyFromURL("http://minio.internal:9000/other/x.mp4")
	assert.False(t, ok)
}
