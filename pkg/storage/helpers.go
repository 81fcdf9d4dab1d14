package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

const uriScheme = "s3://"

// Location is a bucket and key parsed from an s3:// URI.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return uriScheme + l.Bucket + "/" + l.Key
}

// IsURI reports whether s uses the s3:// scheme.
func IsURI(s string) bool {
	return strings.HasPrefix(s, uriScheme)
}

// ParseURI splits "s3://bucket/key" into its parts. The key may be empty
// when the URI names a bucket or a prefix ending in "/".
func ParseURI(s string) (Location, error) {
	if !IsURI(s) {
		return Location{}, fmt.Errorf("%w: %q must start with %s", ErrInvalidURI, s, uriScheme)
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(s, uriScheme), "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: %q has no bucket", ErrInvalidURI, s)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// PutBytes uploads data with the given content type.
func PutBytes(ctx context.Context, s Storage, data []byte, contentType string, opts ...Option) (*FileInfo, error) {
	opts = append([]Option{WithContentType(contentType)}, opts...)
	return s.Put(ctx, bytes.NewReader(data), int64(len(data)), opts...)
}
