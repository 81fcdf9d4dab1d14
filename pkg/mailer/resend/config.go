package resend

import (
	"errors"
	"time"
)

// DefaultDelay is the pause after each successful send.
const DefaultDelay = 100 * time.Millisecond

// ErrInvalidConfig indicates a missing API key or sender.
var ErrInvalidConfig = errors.New("resend: invalid configuration")

// Config holds Resend email provider configuration.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
	// Delay overrides DefaultDelay; negative disables the pause.
	Delay time.Duration `env:"RESEND_DELAY"`
}

func (c *Config) validate() error {
	switch {
	case c.APIKey == "":
		return errors.Join(ErrInvalidConfig, errors.New("API key is required"))
	case c.SenderEmail == "":
		return errors.Join(ErrInvalidConfig, errors.New("sender address is required"))
	}
	return nil
}
