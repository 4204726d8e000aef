// Package config loads back-office client configuration from the
// environment and wires the configured components together.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/habitara/admin-media/pkg/adminmedia"
	"github.com/habitara/admin-media/pkg/adminmedia/restapi"
	fsstorage "github.com/habitara/admin-media/pkg/adminmedia/storage/fs"
	memorystorage "github.com/habitara/admin-media/pkg/adminmedia/storage/memory"
	miniostorage "github.com/habitara/admin-media/pkg/adminmedia/storage/minio"
	s3storage "github.com/habitara/admin-media/pkg/adminmedia/storage/s3"
)

// Config is the full client configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
}

// APIConfig points at the metadata REST API.
type APIConfig struct {
	BaseURL        string `env:"ADMIN_API_BASE_URL" env-default:"http://localhost:3000"`
	Token          string `env:"ADMIN_API_TOKEN"`
	TimeoutSeconds int    `env:"ADMIN_API_TIMEOUT_SECONDS" env-default:"10"`
}

// StorageConfig points at the media blob bucket.
type StorageConfig struct {
	Backend              string `env:"ADMIN_STORAGE_BACKEND" env-default:"s3"`
	Bucket               string `env:"ADMIN_STORAGE_BUCKET" env-default:"media"`
	BaseDir              string `env:"ADMIN_STORAGE_BASE_DIR" env-default:"./media"`
	Endpoint             string `env:"ADMIN_STORAGE_ENDPOINT"`
	PublicBaseURL        string `env:"ADMIN_STORAGE_PUBLIC_BASE_URL"`
	Region               string `env:"ADMIN_STORAGE_REGION" env-default:"us-east-1"`
	AccessKeyID          string `env:"ADMIN_STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey      string `env:"ADMIN_STORAGE_SECRET_ACCESS_KEY"`
	UseSSL               bool   `env:"ADMIN_STORAGE_USE_SSL" env-default:"true"`
	UsePathStyle         bool   `env:"ADMIN_STORAGE_PATH_STYLE" env-default:"false"`
	UploadTimeoutSeconds int    `env:"ADMIN_STORAGE_UPLOAD_TIMEOUT_SECONDS" env-default:"30"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	switch cfg.Storage.Backend {
	case "s3", "minio", "fs", "memory":
	default:
		return nil, fmt.Errorf("unsupported storage backend %q (use s3, minio, fs, or memory)", cfg.Storage.Backend)
	}
	return &cfg, nil
}

// NewBlobStore builds the configured blob-store backend.
func (c *Config) NewBlobStore() (adminmedia.BlobStore, error) {
	switch c.Storage.Backend {
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.Storage.Region,
			Bucket:          c.Storage.Bucket,
			AccessKeyID:     c.Storage.AccessKeyID,
			SecretAccessKey: c.Storage.SecretAccessKey,
			Endpoint:        c.Storage.Endpoint,
			UsePathStyle:    c.Storage.UsePathStyle,
			PublicBaseURL:   c.Storage.PublicBaseURL,
			UploadTimeout:   time.Duration(c.Storage.UploadTimeoutSeconds) * time.Second,
		})
	case "minio":
		return miniostorage.New(miniostorage.Config{
			Endpoint:        c.Storage.Endpoint,
			AccessKeyID:     c.Storage.AccessKeyID,
			SecretAccessKey: c.Storage.SecretAccessKey,
			Bucket:          c.Storage.Bucket,
			UseSSL:          c.Storage.UseSSL,
			UploadTimeout:   time.Duration(c.Storage.UploadTimeoutSeconds) * time.Second,
		})
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir: c.Storage.BaseDir,
			BaseURL: c.Storage.PublicBaseURL,
		})
	case "memory":
		return memorystorage.New(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}
}

// NewAPIClient builds the metadata API client.
func (c *Config) NewAPIClient() *restapi.Client {
	return restapi.New(
		c.API.BaseURL,
		restapi.Credentials{Token: c.API.Token},
		restapi.WithTimeout(time.Duration(c.API.TimeoutSeconds)*time.Second),
	)
}
