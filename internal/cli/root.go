// Package cli implements the massmail command line.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/massmail/pkg/logger"
	"github.com/dmitrymomot/massmail/pkg/settings"
	"github.com/dmitrymomot/massmail/pkg/storage"
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

type app struct {
	log         *slog.Logger
	flush       func()
	openStorage func(storage.Config) (storage.Storage, error)

	settingsPath string
	logLevel     string
	logFormat    string
	envFile      string
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		log:   logger.NewNope(),
		flush: func() {},
		openStorage: func(cfg storage.Config) (storage.Storage, error) {
			return storage.New(cfg)
		},
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "massmail",
		Short: "Send a personalized message to every recipient in a CSV list",
		Long: `massmail loads recipients from a CSV file, personalizes a message for
each of them and sends it through SMTP, Amazon SES or Resend.

Example:
  massmail settings set smtp.server smtp.example.com
  massmail recipients list.csv
  massmail send -f list.csv -s "October news" --body-file news.md --markdown
  massmail send -f s3://lists/october.csv --template news.md --report s3://reports/`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.flush()
		},
	}

	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "settings file (default ~/.mass_email_sender/email_settings.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", logger.FormatConsole, "log format: console or json")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading settings")

	root.AddCommand(
		newSendCommand(a),
		newRecipientsCommand(a),
		newSettingsCommand(a),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}

	a.log, a.flush = logger.NewWithSentry(
		logger.Config{Output: stderr, Format: a.logFormat, Level: level},
		logger.SentryConfig{
			DSN:         os.Getenv("SENTRY_DSN"),
			Environment: os.Getenv("SENTRY_ENVIRONMENT"),
		},
		logger.DispatchIDExtractor(),
	)
	return nil
}

func (a *app) store() *settings.Store {
	return settings.NewStore(a.settingsPath)
}
