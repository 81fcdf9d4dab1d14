package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	netmail "net/mail"
	"time"

	mail "github.com/go-mail/mail"

	"github.com/dmitrymomot/massmail/pkg/mailer"
)

// dialer opens an authenticated SMTP connection.
// *mail.Dialer implements it.
type dialer interface {
	Dial() (mail.SendCloser, error)
}

// Transport implements mailer.Transport over a single SMTP connection.
type Transport struct {
	dialer dialer
	cfg    Config
}

// New creates an SMTP transport. Configuration errors surface on Connect.
func New(cfg Config) *Transport {
	return &Transport{cfg: cfg, dialer: newDialer(cfg)}
}

func newDialer(cfg Config) *mail.Dialer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in for local relays
	}
	// Port 465 speaks TLS from the first byte; everything else negotiates.
	d.SSL = cfg.UseTLS && cfg.Port == 465
	if cfg.UseTLS {
		d.StartTLSPolicy = mail.MandatoryStartTLS
	} else {
		d.StartTLSPolicy = mail.NoStartTLS
	}
	if cfg.Timeout > 0 {
		d.Timeout = cfg.Timeout
	}
	return d
}

func (t *Transport) Name() string { return "smtp" }

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

// Connect dials the relay, upgrades to TLS when configured and
// authenticates.
func (t *Transport) Connect(ctx context.Context) (mailer.Session, error) {
	if err := t.cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := t.dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	return &session{
		dialer:   t.dialer,
		conn:     conn,
		from:     t.cfg.From,
		envelope: envelopeSender(t.cfg.From),
		addr:     fmt.Sprintf("%s:%d", t.cfg.Host, t.cfg.Port),
	}, nil
}

// session owns one SMTP connection. A refused MAIL, RCPT or DATA leaves the
// server-side transaction open, so after any send error the connection is
// dropped and the next Send dials a fresh one.
type session struct {
	dialer   dialer
	conn     mail.SendCloser
	from     string
	envelope string
	addr     string
}

// Send writes one message, reconnecting first if the previous send failed.
func (s *session) Send(_ context.Context, msg *mailer.Message) error {
	if len(msg.To) == 0 {
		return mailer.ErrNoRecipient
	}

	if s.conn == nil {
		conn, err := s.dialer.Dial()
		if err != nil {
			return fmt.Errorf("reconnect to %s: %w", s.addr, err)
		}
		s.conn = conn
	}

	if err := s.conn.Send(s.envelope, msg.To, buildMessage(s.from, msg)); err != nil {
		_ = s.conn.Close()
		s.conn = nil
		return err
	}
	return nil
}

// Close sends QUIT and closes the connection.
func (s *session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// envelopeSender extracts the bare address from a From value such as
// "News <news@example.com>".
func envelopeSender(from string) string {
	addr, err := netmail.ParseAddress(from)
	if err != nil {
		return from
	}
	return addr.Address
}

func buildMessage(from string, msg *mailer.Message) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}

	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}

var _ mailer.Transport = (*Transport)(nil)
