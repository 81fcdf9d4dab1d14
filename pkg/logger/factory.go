package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// Output formats supported by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the handler built by New and NewWithSentry.
type Config struct {
	Output io.Writer  // Default: os.Stderr
	Format string     `env:"LOG_FORMAT" envDefault:"console"`
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// New creates a logger with optional context extractors.
// Console output goes through charmbracelet/log; anything else is JSON.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newBaseHandler(cfg), extractors...))
}

// NewConsole creates a human-readable leveled logger writing to w.
func NewConsole(w io.Writer, level slog.Level) *slog.Logger {
	return New(Config{Output: w, Format: FormatConsole, Level: level})
}

func newBaseHandler(cfg Config) slog.Handler {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}

	if cfg.Format == FormatConsole {
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(cfg.Level),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
