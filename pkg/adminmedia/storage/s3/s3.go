// Package s3 is the S3-compatible BlobStore backend for the media bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/habitara/admin-media/pkg/adminmedia"
)

const defaultUploadTimeout = 30 * time.Second

// Config options for the S3 backend.
type Config struct {
	Region          string // AWS region
	Bucket          string // bucket name (the media bucket)
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // use path-style addressing (default: false)

	// PublicBaseURL is the address prefix public object URLs are built
	// from. When empty it is derived from the endpoint or the standard
	// AWS virtual-hosted form.
	PublicBaseURL string

	// UploadTimeout bounds a single upload. Defaults to 30 seconds.
	UploadTimeout time.Duration
}

// Backend is an S3-compatible implementation of the adminmedia.BlobStore
// interface.
type Backend struct {
	client        *s3.Client
	bucket        string
	publicBase    string
	uploadTimeout time.Duration
}

// New creates a new S3-compatible storage backend.
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = defaultUploadTimeout
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Backend{
		client:        s3.NewFromConfig(awsCfg, s3Options...),
		bucket:        config.Bucket,
		publicBase:    publicBase(config),
		uploadTimeout: config.UploadTimeout,
	}, nil
}

func publicBase(config Config) string {
	if config.PublicBaseURL != "" {
		return strings.TrimSuffix(config.PublicBaseURL, "/")
	}
	if config.Endpoint != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(config.Endpoint, "/"), config.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
}

// Upload writes the object to the bucket.
func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader, params adminmedia.UploadParams) error {
	ctx, cancel := context.WithTimeout(ctx, b.uploadTimeout)
	defer cancel()

	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   reader,
	}
	if params.ContentType != "" {
		input.ContentType = aws.String(params.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return &adminmedia.StorageError{Backend: "s3", Key: key, Op: "upload", Err: err}
	}
	return nil
}

// Delete removes the object at key. A missing object is success.
func (b *Backend) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		return &adminmedia.StorageError{Backend: "s3", Key: key, Op: "delete", Err: err}
	}
	return nil
}

// isNotFound covers the error shapes S3-compatible services answer a delete
// of a missing key with.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
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
