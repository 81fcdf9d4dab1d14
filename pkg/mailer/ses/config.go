package ses

import (
	"errors"
	"time"
)

// DefaultDelay is the pause after each successful send.
const DefaultDelay = 100 * time.Millisecond

// DefaultRegion is used when Region is empty.
const DefaultRegion = "us-east-1"

// ErrInvalidConfig indicates missing credentials or sender.
var ErrInvalidConfig = errors.New("ses: invalid configuration")

// Config holds SES API settings.
type Config struct {
	AccessKey string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
	From      string `env:"SES_FROM_EMAIL"`
	FromName  string `env:"SES_FROM_NAME"`
	// ConfigurationSet attaches an SES configuration set to every send.
	ConfigurationSet string `env:"SES_CONFIGURATION_SET"`
	// Endpoint overrides the API endpoint (LocalStack and similar).
	Endpoint string `env:"SES_ENDPOINT"`
	// Delay overrides DefaultDelay; negative disables the pause.
	Delay time.Duration `env:"SES_DELAY"`
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	switch {
	case c.AccessKey == "":
		return errors.Join(ErrInvalidConfig, errors.New("access key is required"))
	case c.SecretKey == "":
		return errors.Join(ErrInvalidConfig, errors.New("secret key is required"))
	case c.From == "":
		return errors.Join(ErrInvalidConfig, errors.New("sender address is required"))
	}
	return nil
}
