package dispatch

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/massmail/pkg/logger"
	"github.com/dmitrymomot/massmail/pkg/mailer"
	"github.com/dmitrymomot/massmail/pkg/settings"
)

type options struct {
	logger       *slog.Logger
	transportFor func(*settings.Settings) (mailer.Transport, error)
	mailer       []mailer.Option
	id           string
}

// Option configures a dispatch.
type Option func(*options)

// WithProgress registers a callback invoked after every attempt.
func WithProgress(fn mailer.ProgressFunc) Option {
	return func(o *options) {
		o.mailer = append(o.mailer, mailer.WithProgress(fn))
	}
}

// WithDelay overrides the provider's pause after each successful send.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.mailer = append(o.mailer, mailer.WithDelay(d))
	}
}

// WithMarkdown sends an HTML alternative rendered from the body.
func WithMarkdown() Option {
	return func(o *options) {
		o.mailer = append(o.mailer, mailer.WithMarkdown())
	}
}

// WithTags attaches provider tags to every message in addition to the
// dispatch_id tag.
func WithTags(tags mailer.Tags) Option {
	return func(o *options) {
		o.mailer = append(o.mailer, mailer.WithTags(tags))
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithID uses id instead of a generated dispatch identifier.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:       logger.NewNope(),
		transportFor: TransportFor,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
