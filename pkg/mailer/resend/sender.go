package resend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/massmail/pkg/mailer"
)

// emailsAPI is the part of the Resend client used for delivery.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Transport implements mailer.Transport using the Resend API.
type Transport struct {
	newClient func(Config) emailsAPI
	config    Config
}

// New creates a Resend transport. Configuration errors surface on Connect.
func New(cfg Config) *Transport {
	return &Transport{config: cfg, newClient: newClient}
}

func newClient(cfg Config) emailsAPI {
	return resend.NewClient(cfg.APIKey).Emails
}

func (t *Transport) Name() string { return "resend" }

func (t *Transport) Delay() time.Duration {
	switch {
	case t.config.Delay < 0:
		return 0
	case t.config.Delay > 0:
		return t.config.Delay
	default:
		return DefaultDelay
	}
}

// Connect builds the API client. No request is made until the first Send.
func (t *Transport) Connect(ctx context.Context) (mailer.Session, error) {
	if err := t.config.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{emails: t.newClient(t.config), config: t.config}, nil
}

type session struct {
	emails emailsAPI
	config Config
}

func (s *session) Send(ctx context.Context, email *mailer.Message) error {
	if len(email.To) == 0 {
		return mailer.ErrNoRecipient
	}

	req := &resend.SendEmailRequest{
		From:    mailer.Address(s.config.SenderName, s.config.SenderEmail),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.emails.SendWithContext(ctx, req); err != nil {
		return wrapResendError(err)
	}
	return nil
}

func (s *session) Close() error { return nil }

func wrapResendError(err error) error {
	return fmt.Errorf("%w: resend: %w", mailer.ErrSendFailed, err)
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

var _ mailer.Transport = (*Transport)(nil)
