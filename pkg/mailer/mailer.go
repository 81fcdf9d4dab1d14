package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/dmitrymomot/massmail/pkg/recipient"
)

// SendAll connects through t and sends tmpl to every recipient in order.
//
// A connection failure returns a *ConnectionError and a report with no
// attempts. Per-recipient failures are recorded and the loop continues; if
// any occurred, the complete report is returned with a *PartialFailureError.
// A cancelled context stops the loop between recipients and returns the
// partial report with the context error. The session is always closed.
func SendAll(ctx context.Context, t Transport, recipients recipient.Set, tmpl MessageTemplate, opts ...Option) (*Report, error) {
	cfg := newSendConfig(opts...)

	delay := t.Delay()
	if cfg.delay != nil {
		delay = *cfg.delay
	}

	total := len(recipients)
	report := &Report{
		ID:        cfg.id,
		Provider:  t.Name(),
		Total:     total,
		Failures:  []Failure{},
		StartedAt: cfg.now(),
	}
	stamp := newStamp(cfg)
	log := cfg.logger.With(slog.String("provider", t.Name()), slog.Int("total", total))

	log.InfoContext(ctx, "connecting")
	session, err := t.Connect(ctx)
	if err != nil {
		report.FinishedAt = cfg.now()
		log.ErrorContext(ctx, "connection failed", slog.String("error", err.Error()))
		return report, &ConnectionError{Provider: t.Name(), Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.WarnContext(ctx, "failed to close session", slog.String("error", err.Error()))
		}
	}()

	for i, r := range recipients {
		if err := ctx.Err(); err != nil {
			return finishCancelled(ctx, log, cfg, report, err)
		}

		current := i + 1
		err := sendOne(ctx, session, cfg, stamp, tmpl, r)
		if err != nil {
			report.Failures = append(report.Failures, Failure{
				Email:  r.Email,
				Reason: err.Error(),
				Err:    classify(err),
			})
			log.WarnContext(ctx, "send failed",
				slog.String("email", r.Email),
				slog.Int("current", current),
				slog.String("error", err.Error()),
			)
			cfg.emit(Progress{
				Current: current,
				Total:   total,
				Email:   r.Email,
				Message: "Failed: " + r.Email,
				Err:     err,
			})
			continue
		}

		report.Sent++
		log.DebugContext(ctx, "sent", slog.String("email", r.Email), slog.Int("current", current))
		cfg.emit(Progress{
			Current: current,
			Total:   total,
			Email:   r.Email,
			Message: fmt.Sprintf("Sent to %s (%d/%d)", r.Email, current, total),
		})

		if delay > 0 {
			select {
			case <-ctx.Done():
				return finishCancelled(ctx, log, cfg, report, ctx.Err())
			case <-cfg.sleep(delay):
			}
		}
	}

	report.FinishedAt = cfg.now()
	log.InfoContext(ctx, "dispatch finished",
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed()),
		slog.Duration("elapsed", report.Elapsed()),
	)

	if len(report.Failures) > 0 {
		return report, &PartialFailureError{Report: report}
	}
	return report, nil
}

// stamp holds the headers and tags shared by every message of a dispatch.
type stamp struct {
	headers map[string]string
	tags    Tags
}

func newStamp(cfg *sendConfig) stamp {
	var s stamp
	if len(cfg.tags) > 0 || cfg.id != "" {
		s.tags = make(Tags, len(cfg.tags)+1)
		maps.Copy(s.tags, cfg.tags)
	}
	if cfg.id != "" {
		s.headers = map[string]string{HeaderDispatchID: cfg.id}
		s.tags[TagDispatchID] = cfg.id
	}
	return s
}

func sendOne(ctx context.Context, session Session, cfg *sendConfig, st stamp, tmpl MessageTemplate, r recipient.Recipient) error {
	msg := &Message{
		To:      []string{r.Email},
		Subject: tmpl.Subject,
		Text:    RenderBody(tmpl.Body, r),
		Headers: maps.Clone(st.headers),
		Tags:    maps.Clone(st.tags),
	}

	if cfg.html != nil {
		html, err := cfg.html.Render(msg.Text)
		if err != nil {
			return err
		}
		msg.HTML = html
	}

	return session.Send(ctx, msg)
}

// classify makes sure every recorded failure matches one of the
// per-recipient sentinels.
func classify(err error) error {
	if errors.Is(err, ErrRejected) || errors.Is(err, ErrSendFailed) || errors.Is(err, ErrRender) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSendFailed, err)
}

func finishCancelled(ctx context.Context, log *slog.Logger, cfg *sendConfig, report *Report, err error) (*Report, error) {
	report.FinishedAt = cfg.now()
	log.WarnContext(ctx, "dispatch cancelled",
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed()),
		slog.Int("remaining", report.Total-report.Attempted()),
	)
	return report, fmt.Errorf("dispatch cancelled after %d of %d recipients: %w", report.Attempted(), report.Total, err)
}

func (c *sendConfig) emit(p Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}
