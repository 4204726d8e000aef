// Package minio is a MinIO-backed BlobStore for self-hosted media buckets.
package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

const defaultUploadTimeout = 30 * time.Second

// Config options for the MinIO backend.
type Config struct {
	Endpoint        string // host:port of the MinIO server
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool

	// PublicEndpoint is the host public URLs are built from when it
	// differs from Endpoint (e.g. behind a reverse proxy). Defaults to
	// Endpoint.
	PublicEndpoint string
	PublicUseSSL   bool

	// UploadTimeout bounds a single upload. Defaults to 30 seconds.
	UploadTimeout time.Duration
}

// Backend is a MinIO implementation of the adminmedia.BlobStore interface.
type Backend struct {
	client        *minio.Client
	bucket        string
	publicBase    string
	uploadTimeout time.Duration
}

// New creates a new MinIO storage backend.
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = defaultUploadTimeout
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKeyID, config.SecretAccessKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Backend{
		client:        client,
		bucket:        config.Bucket,
		publicBase:    publicBase(config),
		uploadTimeout: config.UploadTimeout,
	}, nil
}

func publicBase(config Config) string {
	endpoint := config.PublicEndpoint
	useSSL := config.PublicUseSSL
	if endpoint == "" {
		endpoint = config.Endpoint
		useSSL = config.UseSSL
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, endpoint, config.Bucket)
}

// Upload writes the object to the bucket.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, params adminmedia.UploadParams) error {
	ctx, cancel := context.WithTimeout(ctx, b.uploadTimeout)
	defer cancel()

	size := params.Size
	if size <= 0 {
		size = -1
	}

	_, err := b.client.PutObject(ctx, b.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: params.ContentType,
	})
	if err != nil {
		return &adminmedia.StorageError{Backend: "minio", Key: key, Op: "upload", Err: err}
	}
	return nil
}

// Delete removes the object at key. A missing object is success.
func (b *Backend) Delete(ctx context.Context, key string) error {
	err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return &adminmedia.StorageError{Backend: "minio", Key: key, Op: "delete", Err: err}
	}
	return nil
}

// PublicURL derives the public address for key.
func (b *Backend) PublicURL(key string) string {
	return b.publicBase + "/" + key
}

// KeyFromURL recovers the storage key from a URL this backend produced.
func (b *Backend) KeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, b.publicBase+"/") {
		return "", false
	}
	return strings.TrimPrefix(rawURL, b.publicBase+"/"), true
}
