package smtp

import (
	"errors"
	"time"
)

// DefaultDelay is the pause after each successful send.
const DefaultDelay = 500 * time.Millisecond

// DefaultPort is the mail submission port.
const DefaultPort = 587

var (
	// ErrInvalidConfig indicates missing or out of range settings.
	ErrInvalidConfig = errors.New("smtp: invalid configuration")
)

// Config holds SMTP relay settings.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	// Delay overrides DefaultDelay; negative disables the pause.
	Delay time.Duration `env:"SMTP_DELAY"`
	// Timeout bounds dialing and each network operation (library default when zero).
	Timeout            time.Duration `env:"SMTP_TIMEOUT"`
	Port               int           `env:"SMTP_PORT" envDefault:"587"`
	UseTLS             bool          `env:"SMTP_USE_TLS" envDefault:"true"`
	InsecureSkipVerify bool          `env:"SMTP_INSECURE_SKIP_VERIFY"`
}

func (c *Config) validate() error {
	switch {
	case c.Host == "":
		return errors.Join(ErrInvalidConfig, errors.New("host is required"))
	case c.Port < 1 || c.Port > 65535:
		return errors.Join(ErrInvalidConfig, errors.New("port must be between 1 and 65535"))
	case c.From == "":
		return errors.Join(ErrInvalidConfig, errors.New("sender address is required"))
	}
	return nil
}
