package storage

import (
	"context"
	"io"
)

// Storage defines the object operations massmail needs.
type Storage interface {
	// Put uploads data from a reader to storage.
	// The size parameter is used for the content-length header.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves an object. The caller must close the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"MASSMAIL_S3_BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"AWS_ACCESS_KEY_ID"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `env:"MASSMAIL_S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"AWS_REGION"`

	// MaxObjectSize caps the size of objects returned by Get (default: 50MB).
	MaxObjectSize int64 `env:"MASSMAIL_S3_MAX_OBJECT_SIZE"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"MASSMAIL_S3_PATH_STYLE"`
}

// FileInfo contains metadata about an uploaded object.
type FileInfo struct {
	Key         string
	ContentType string
	Size        int64
}

// Default configuration values.
const (
	DefaultRegion        = "us-east-1"
	DefaultMaxObjectSize = 50 << 20 // 50MB
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxObjectSize == 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return ErrInvalidConfig
	}
	if c.AccessKey == "" {
		return ErrInvalidConfig
	}
	if c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
