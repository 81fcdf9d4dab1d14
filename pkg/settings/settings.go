package settings

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/massmail/pkg/recipient"
)

// Provider identifies the active transport.
type Provider string

const (
	ProviderSMTP   Provider = "smtp"
	ProviderSES    Provider = "ses"
	ProviderResend Provider = "resend"
)

// Defaults applied when a value is not stored.
const (
	DefaultSMTPPort  = 587
	DefaultSESRegion = "us-east-1"
)

// ParseProvider accepts the stored tags and the display labels older
// releases persisted ("SMTP", "AWS SES").
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smtp":
		return ProviderSMTP, nil
	case "ses", "aws ses", "aws_ses":
		return ProviderSES, nil
	case "resend":
		return ProviderResend, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// NormalizeProvider is ParseProvider with SMTP as the fallback.
func NormalizeProvider(s string) Provider {
	p, err := ParseProvider(s)
	if err != nil {
		return ProviderSMTP
	}
	return p
}

// Settings is the persisted provider configuration.
type Settings struct {
	Provider Provider       `json:"provider" mapstructure:"provider"`
	SMTP     SMTPSettings   `json:"smtp" mapstructure:"smtp"`
	SES      SESSettings    `json:"ses" mapstructure:"ses"`
	Resend   ResendSettings `json:"resend" mapstructure:"resend"`
}

type SMTPSettings struct {
	Server         string `json:"server" mapstructure:"server"`
	SenderEmail    string `json:"sender_email" mapstructure:"sender_email"`
	SenderPassword string `json:"password" mapstructure:"password"`
	Port           int    `json:"port" mapstructure:"port"`
	UseTLS         bool   `json:"use_tls" mapstructure:"use_tls"`
}

type SESSettings struct {
	AccessKey   string `json:"access_key" mapstructure:"access_key"`
	SecretKey   string `json:"secret_key" mapstructure:"secret_key"`
	Region      string `json:"region" mapstructure:"region"`
	SenderEmail string `json:"sender_email" mapstructure:"sender_email"`
}

type ResendSettings struct {
	APIKey      string `json:"api_key" mapstructure:"api_key"`
	SenderEmail string `json:"sender_email" mapstructure:"sender_email"`
	SenderName  string `json:"sender_name" mapstructure:"sender_name"`
}

// Default returns SMTP settings with the default port, TLS and region.
func Default() *Settings {
	return &Settings{
		Provider: ProviderSMTP,
		SMTP:     SMTPSettings{Port: DefaultSMTPPort, UseTLS: true},
		SES:      SESSettings{Region: DefaultSESRegion},
	}
}

// Active returns the selected provider, SMTP when unset or unknown.
func (s *Settings) Active() Provider {
	return NormalizeProvider(string(s.Provider))
}

// Validate checks the active variant only.
func (s *Settings) Validate() error {
	switch s.Active() {
	case ProviderSES:
		return s.SES.validate()
	case ProviderResend:
		return s.Resend.validate()
	default:
		return s.SMTP.validate()
	}
}

func (c SMTPSettings) validate() error {
	switch {
	case c.Server == "":
		return invalid("smtp.server", "is required")
	case c.Port < 1 || c.Port > 65535:
		return invalid("smtp.port", "must be between 1 and 65535")
	case c.SenderEmail == "":
		return invalid("smtp.sender_email", "is required")
	case !recipient.IsValidEmail(c.SenderEmail):
		return invalid("smtp.sender_email", "is not a valid email address")
	case c.SenderPassword == "":
		return invalid("smtp.password", "is required")
	}
	return nil
}

func (c SESSettings) validate() error {
	switch {
	case c.AccessKey == "":
		return invalid("ses.access_key", "is required")
	case c.SecretKey == "":
		return invalid("ses.secret_key", "is required")
	case c.Region == "":
		return invalid("ses.region", "is required")
	case c.SenderEmail == "":
		return invalid("ses.sender_email", "is required")
	case !recipient.IsValidEmail(c.SenderEmail):
		return invalid("ses.sender_email", "is not a valid email address")
	}
	return nil
}

func (c ResendSettings) validate() error {
	switch {
	case c.APIKey == "":
		return invalid("resend.api_key", "is required")
	case c.SenderEmail == "":
		return invalid("resend.sender_email", "is required")
	case !recipient.IsValidEmail(c.SenderEmail):
		return invalid("resend.sender_email", "is not a valid email address")
	}
	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidSettings, field, reason)
}

// Redacted returns a copy with secrets masked for display.
func (s Settings) Redacted() Settings {
	s.SMTP.SenderPassword = mask(s.SMTP.SenderPassword)
	s.SES.SecretKey = mask(s.SES.SecretKey)
	s.Resend.APIKey = mask(s.Resend.APIKey)
	return s
}

func mask(v string) string {
	if v == "" {
		return ""
	}
	return "********"
}
