package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultContentType = "application/octet-stream"

// objectAPI is the subset of the S3 client used by S3Storage.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Storage implements Storage using S3-compatible object storage.
type S3Storage struct {
	client objectAPI
	cfg    Config
}

// New creates a new S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Put uploads data from a reader to S3.
func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := &putOptions{contentType: defaultContentType}
	for _, opt := range opts {
		opt(o)
	}

	// The SDK needs a seekable body to compute the payload checksum.
	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	key := o.key
	if key == "" {
		key = buildKey(o.prefix, o.contentType)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(o.contentType),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{
		Key:         key,
		Size:        size,
		ContentType: o.contentType,
	}, nil
}

// Get retrieves an object from S3.
// Objects larger than Config.MaxObjectSize are rejected with ErrObjectTooLarge.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrDownloadFailed)
	}

	if output.ContentLength != nil && *output.ContentLength > s.cfg.MaxObjectSize {
		_ = output.Body.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrObjectTooLarge, key, *output.ContentLength)
	}

	// The length header is optional, so the limit is also enforced while reading.
	return &limitedBody{
		body: output.Body,
		r:    io.LimitReader(output.Body, s.cfg.MaxObjectSize+1),
		max:  s.cfg.MaxObjectSize,
		key:  key,
	}, nil
}

// limitedBody returns ErrObjectTooLarge once more than max bytes are read.
type limitedBody struct {
	body io.ReadCloser
	r    io.Reader
	key  string
	read int64
	max  int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	b.read += int64(n)
	if over := b.read - b.max; over > 0 {
		return n - int(over), fmt.Errorf("%w: %s exceeds %d bytes", ErrObjectTooLarge, b.key, b.max)
	}
	return n, err
}

func (b *limitedBody) Close() error { return b.body.Close() }

// buildKey constructs a storage key from prefix and content type.
// Format: {prefix}/{uuid}.{ext}
func buildKey(prefix, contentType string) string {
	var parts []string
	if prefix != "" {
		parts = append(parts, sanitizePathSegment(prefix))
	}
	parts = append(parts, uuid.NewString()+extFromMIME(contentType))
	return strings.Join(parts, "/")
}

func extFromMIME(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}
	switch mediaType {
	case "application/json":
		return ".json"
	case "text/csv":
		return ".csv"
	case "text/plain":
		return ".txt"
	}
	return ".bin"
}

// pathSegmentRegex matches characters that are not safe for path segments.
var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment removes potentially dangerous characters from path segments.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = pathSegmentRegex.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}

var _ Storage = (*S3Storage)(nil)
