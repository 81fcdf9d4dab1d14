package storage

// Option configures Put operations.
type Option func(*putOptions)

type putOptions struct {
	key         string // Explicit key (replaces auto-generated)
	prefix      string // Path prefix (e.g., "reports/")
	contentType string
}

// WithKey sets an explicit storage key, replacing the generated one.
func WithKey(key string) Option {
	return func(o *putOptions) {
		o.key = key
	}
}

// WithPrefix sets a path prefix for a generated key.
// Example: WithPrefix("reports") results in "reports/{uuid}.json"
func WithPrefix(prefix string) Option {
	return func(o *putOptions) {
		o.prefix = prefix
	}
}

// WithContentType sets the object content type.
// The default is application/octet-stream.
func WithContentType(ct string) Option {
	return func(o *putOptions) {
		o.contentType = ct
	}
}
