package mailer

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/massmail/pkg/logger"
)

// sendConfig holds SendAll configuration.
type sendConfig struct {
	logger   *slog.Logger
	progress ProgressFunc
	html     *HTMLRenderer
	delay    *time.Duration
	sleep    func(time.Duration) <-chan time.Time
	now      func() time.Time
	id       string
	tags     Tags
}

func newSendConfig(opts ...Option) *sendConfig {
	c := &sendConfig{
		logger: logger.NewNope(),
		sleep:  time.After,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures SendAll.
type Option func(*sendConfig)

// WithProgress registers a callback invoked after every attempt.
func WithProgress(fn ProgressFunc) Option {
	return func(c *sendConfig) {
		c.progress = fn
	}
}

// WithDelay overrides the transport's pause after each successful send.
// Zero disables the pause.
func WithDelay(d time.Duration) Option {
	return func(c *sendConfig) {
		c.delay = &d
	}
}

// WithMarkdown attaches an HTML alternative rendered from the body.
func WithMarkdown() Option {
	return func(c *sendConfig) {
		c.html = NewHTMLRenderer()
	}
}

// WithLogger sets the logger for the send loop.
func WithLogger(l *slog.Logger) Option {
	return func(c *sendConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithID tags the report and log records with a dispatch identifier.
func WithID(id string) Option {
	return func(c *sendConfig) {
		c.id = id
	}
}

// WithTags attaches provider tags to every message. Transports without tag
// support ignore them.
func WithTags(tags Tags) Option {
	return func(c *sendConfig) {
		c.tags = tags
	}
}

// withClock replaces time sources in tests.
func withClock(now func() time.Time, sleep func(time.Duration) <-chan time.Time) Option {
	return func(c *sendConfig) {
		c.now = now
		c.sleep = sleep
	}
}
