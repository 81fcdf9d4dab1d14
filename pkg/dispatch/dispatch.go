package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/massmail/pkg/logger"
	"github.com/dmitrymomot/massmail/pkg/mailer"
	"github.com/dmitrymomot/massmail/pkg/mailer/resend"
	"github.com/dmitrymomot/massmail/pkg/mailer/ses"
	"github.com/dmitrymomot/massmail/pkg/mailer/smtp"
	"github.com/dmitrymomot/massmail/pkg/recipient"
	"github.com/dmitrymomot/massmail/pkg/settings"
)

// Dispatch renders subject and body for every recipient and sends them
// sequentially through the active provider. The report is returned as
// produced by mailer.SendAll, along with its error.
func Dispatch(
	ctx context.Context,
	recipients recipient.Set,
	subject, body string,
	s *settings.Settings,
	opts ...Option,
) (*mailer.Report, error) {
	o := newOptions(opts...)
	if s == nil {
		s = settings.Default()
	}

	id := o.id
	if id == "" {
		id = uuid.NewString()
	}
	ctx = logger.WithDispatchID(ctx, id)
	provider := string(s.Active())

	t, err := o.transportFor(s)
	if err != nil {
		o.logger.ErrorContext(ctx, "invalid settings",
			slog.String("provider", provider),
			slog.String("error", err.Error()),
		)
		now := time.Now()
		report := &mailer.Report{
			ID:         id,
			Provider:   provider,
			Total:      len(recipients),
			Failures:   []mailer.Failure{},
			StartedAt:  now,
			FinishedAt: now,
		}
		return report, &mailer.ConnectionError{Provider: provider, Err: err}
	}

	tmpl := mailer.MessageTemplate{Subject: subject, Body: body}
	mailerOpts := append([]mailer.Option{mailer.WithID(id), mailer.WithLogger(o.logger)}, o.mailer...)

	return mailer.SendAll(ctx, t, recipients, tmpl, mailerOpts...)
}

// TransportFor validates the active provider settings and builds its
// transport. SMTP authenticates as the sender address.
func TransportFor(s *settings.Settings) (mailer.Transport, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Active() {
	case settings.ProviderSES:
		return ses.New(ses.Config{
			AccessKey: s.SES.AccessKey,
			SecretKey: s.SES.SecretKey,
			Region:    s.SES.Region,
			From:      s.SES.SenderEmail,
		}), nil
	case settings.ProviderResend:
		return resend.New(resend.Config{
			APIKey:      s.Resend.APIKey,
			SenderEmail: s.Resend.SenderEmail,
			SenderName:  s.Resend.SenderName,
		}), nil
	default:
		return smtp.New(smtp.Config{
			Host:     s.SMTP.Server,
			Port:     s.SMTP.Port,
			UseTLS:   s.SMTP.UseTLS,
			Username: s.SMTP.SenderEmail,
			Password: s.SMTP.SenderPassword,
			From:     s.SMTP.SenderEmail,
		}), nil
	}
}
