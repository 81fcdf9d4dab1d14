package ses

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/dmitrymomot/massmail/pkg/mailer"
)

const charset = "UTF-8"

// sendEmailAPI is the part of *sesv2.Client used for delivery.
type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Transport implements mailer.Transport on top of SES v2.
type Transport struct {
	newClient func(Config) sendEmailAPI
	cfg       Config
}

// New creates an SES transport. Configuration errors surface on Connect.
func New(cfg Config) *Transport {
	cfg.applyDefaults()
	return &Transport{cfg: cfg, newClient: newClient}
}

func newClient(cfg Config) sendEmailAPI {
	return sesv2.New(sesv2.Options{}, func(o *sesv2.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

func (t *Transport) Name() string { return "ses" }

func (t *Transport) Delay() time.Duration {
	switch {
	case t.cfg.Delay < 0:
		return 0
	case t.cfg.Delay > 0:
		return t.cfg.Delay
	default:
		return DefaultDelay
	}
}

// Connect validates the credentials and builds the API client.
// No request is made until the first Send.
func (t *Transport) Connect(ctx context.Context) (mailer.Session, error) {
	if err := t.cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{client: t.newClient(t.cfg), cfg: t.cfg}, nil
}

type session struct {
	client sendEmailAPI
	cfg    Config
}

// Send issues one SendEmail call.
func (s *session) Send(ctx context.Context, msg *mailer.Message) error {
	if len(msg.To) == 0 {
		return mailer.ErrNoRecipient
	}

	if _, err := s.client.SendEmail(ctx, s.buildInput(msg)); err != nil {
		return wrapSESError(err)
	}
	return nil
}

// Close is a no-op; the API client holds no connection of its own.
func (s *session) Close() error { return nil }

func (s *session) buildInput(msg *mailer.Message) *sesv2.SendEmailInput {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)},
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(mailer.Address(s.cfg.FromName, s.cfg.From)),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body:    body,
			},
		},
	}
	for _, name := range slices.Sorted(maps.Keys(msg.Headers)) {
		input.Content.Simple.Headers = append(input.Content.Simple.Headers, types.MessageHeader{
			Name:  aws.String(name),
			Value: aws.String(msg.Headers[name]),
		})
	}
	if s.cfg.ConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(s.cfg.ConfigurationSet)
	}
	if len(msg.Tags) > 0 {
		input.EmailTags = convertTags(msg.Tags)
	}
	return input
}

// convertTags maps mailer tags to SES message tags. Presence-only tags get
// the value "true".
func convertTags(tags mailer.Tags) []types.MessageTag {
	out := make([]types.MessageTag, 0, len(tags))
	for name, value := range tags {
		v := "true"
		switch val := value.(type) {
		case struct{}, nil:
		case string:
			v = val
		default:
			v = fmt.Sprint(val)
		}
		out = append(out, types.MessageTag{Name: aws.String(name), Value: aws.String(v)})
	}
	return out
}

var _ mailer.Transport = (*Transport)(nil)
