package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/massmail/pkg/dispatch"
	"github.com/dmitrymomot/massmail/pkg/mailer"
	"github.com/dmitrymomot/massmail/pkg/settings"
)

type sendFlags struct {
	file     string
	subject  string
	body     string
	bodyFile string
	template string
	provider string
	report   string
	delay    time.Duration
	markdown bool
	tags     []string
}

func newSendCommand(a *app) *cobra.Command {
	f := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the message to every recipient in the list",
		Long: `Send renders the body for each recipient and delivers it through the
configured provider, one message at a time.

The body may use {first_name}, {last_name} and {email}; every message
starts with "Dear <first> <last>,". A template file holds the subject in
YAML frontmatter followed by the body:

  ---
  Subject: October news
  ---
  Hello {first_name}, ...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSend(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", "", "recipient CSV file or s3://bucket/key (required)")
	flags.StringVarP(&f.subject, "subject", "s", "", "message subject")
	flags.StringVarP(&f.body, "body", "b", "", "message body")
	flags.StringVar(&f.bodyFile, "body-file", "", "read the message body from a file")
	flags.StringVarP(&f.template, "template", "t", "", "template file with subject frontmatter and body")
	flags.StringVarP(&f.provider, "provider", "p", "", "override the stored provider: smtp, ses, resend")
	flags.DurationVar(&f.delay, "delay", 0, "pause after each successful send (default: provider specific)")
	flags.BoolVar(&f.markdown, "markdown", false, "also send an HTML part rendered from the body as Markdown")
	flags.StringSliceVar(&f.tags, "tag", nil, "provider tag as name or name=value (repeatable)")
	flags.StringVar(&f.report, "report", "", "write the JSON report to a file or s3:// location")
	_ = cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("body", "body-file")

	return cmd
}

func (a *app) runSend(cmd *cobra.Command, f *sendFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := a.store().Load()
	if err != nil {
		return err
	}
	if f.provider != "" {
		p, err := settings.ParseProvider(f.provider)
		if err != nil {
			return err
		}
		s.Provider = p
	}

	tmpl, err := resolveTemplate(f)
	if err != nil {
		return err
	}
	tags, err := parseTags(f.tags)
	if err != nil {
		return err
	}

	set, err := a.loadRecipients(ctx, f.file, s)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return errors.New("no valid recipients found in " + f.file)
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(a.log),
		dispatch.WithProgress(func(p mailer.Progress) {
			fmt.Fprintln(out, p.Message)
		}),
	}
	if cmd.Flags().Changed("delay") {
		opts = append(opts, dispatch.WithDelay(f.delay))
	}
	if f.markdown {
		opts = append(opts, dispatch.WithMarkdown())
	}
	if len(tags) > 0 {
		opts = append(opts, dispatch.WithTags(tags))
	}

	fmt.Fprintf(out, "Sending to %d recipients via %s\n", len(set), s.Active())
	report, sendErr := dispatch.Dispatch(ctx, set, tmpl.Subject, tmpl.Body, s, opts...)

	if report != nil {
		fmt.Fprintf(out, "Sent %d of %d emails in %s\n", report.Sent, report.Total, report.Elapsed().Round(time.Millisecond))
		if f.report != "" {
			if err := a.writeReport(cmd, f.report, report, s); err != nil {
				return errors.Join(sendErr, err)
			}
		}
	}
	return sendErr
}

func (a *app) writeReport(cmd *cobra.Command, dest string, report *mailer.Report, s *settings.Settings) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	where, err := a.saveReport(cmd.Context(), dest, append(data, '\n'), s)
	if err != nil {
		a.log.ErrorContext(cmd.Context(), "failed to save report", slog.String("error", err.Error()))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Report saved to", where)
	return nil
}

// parseTags turns "name" and "name=value" flag values into mailer tags.
// Bare names become presence-only tags.
func parseTags(values []string) (mailer.Tags, error) {
	var names []string
	valued := map[string]string{}
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid tag %q: name is required", v)
		}
		if !ok {
			names = append(names, name)
			continue
		}
		valued[name] = strings.TrimSpace(value)
	}

	tags := mailer.SimpleTags(names...)
	for name, value := range valued {
		tags[name] = value
	}
	return tags, nil
}

// resolveTemplate merges the template file with explicit flags. Flags win.
func resolveTemplate(f *sendFlags) (*mailer.MessageTemplate, error) {
	tmpl := &mailer.MessageTemplate{}
	if f.template != "" {
		t, err := mailer.LoadTemplate(f.template)
		if err != nil {
			return nil, err
		}
		tmpl = t
	}

	if f.subject != "" {
		tmpl.Subject = f.subject
	}
	switch {
	case f.body != "":
		tmpl.Body = f.body
	case f.bodyFile != "":
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		tmpl.Body = string(data)
	}

	switch {
	case tmpl.Subject == "":
		return nil, errors.New("subject is required: use --subject or a template with Subject frontmatter")
	case tmpl.Body == "":
		return nil, errors.New("body is required: use --body, --body-file or --template")
	}
	return tmpl, nil
}
