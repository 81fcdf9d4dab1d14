package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/massmail/pkg/logger"
	"github.com/dmitrymomot/massmail/pkg/mailer"
	"github.com/dmitrymomot/massmail/pkg/settings"
	"github.com/dmitrymomot/massmail/pkg/storage"
)

type fakeStorage struct {
	objects map[string][]byte
	configs []storage.Config
}

func (f *fakeStorage) Put(_ context.Context, r io.Reader, _ int64, opts ...storage.Option) (*storage.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// Generated keys are not needed here; record under a fixed name.
	key := "report.json"
	f.objects[key] = data
	return &storage.FileInfo{Key: key, Size: int64(len(data))}, nil
}

func (f *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type harness struct {
	storage  *fakeStorage
	settings string
	dir      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{
		dir:      dir,
		settings: filepath.Join(dir, "email_settings.json"),
		storage:  &fakeStorage{objects: map[string][]byte{}},
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a := &app{
		log:   logger.NewNope(),
		flush: func() {},
		openStorage: func(cfg storage.Config) (storage.Storage, error) {
			h.storage.configs = append(h.storage.configs, cfg)
			return h.storage, nil
		},
	}
	cmd := newRootCommand(a)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--settings", h.settings, "--env-file", ""}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const recipientsCSV = "Email,First Name,Last Name\n" +
	"ann@example.com,Ann,Lee\n" +
	"not-an-email,Bad,Row\n" +
	"bob@example.com,Bob,Ray\n"

func TestSettingsCommands(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	out, err := h.run(t, "settings", "path")
	require.NoError(t, err)
	require.Equal(t, h.settings+"\n", out)

	_, err = h.run(t, "settings", "check")
	require.ErrorIs(t, err, settings.ErrInvalidSettings)

	for _, kv := range [][2]string{
		{"smtp.server", "smtp.example.com"},
		{"smtp.sender_email", "news@example.com"},
		{"smtp.password", "hunter2"},
	} {
		out, err = h.run(t, "settings", "set", kv[0], kv[1])
		require.NoError(t, err)
		require.Equal(t, kv[0]+" updated\n", out)
	}

	out, err = h.run(t, "settings", "check")
	require.NoError(t, err)
	require.Equal(t, "smtp settings are valid\n", out)

	out, err = h.run(t, "settings", "show")
	require.NoError(t, err)
	require.Contains(t, out, `"server": "smtp.example.com"`)
	require.Contains(t, out, `"password": "********"`)
	require.NotContains(t, out, "hunter2")

	_, err = h.run(t, "settings", "set", "smtp.hostname", "x")
	require.ErrorIs(t, err, settings.ErrUnknownKey)
}

func TestSettingsCheck_PlaintextAuthWarning(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for _, kv := range [][2]string{
		{"smtp.server", "smtp.example.com"},
		{"smtp.sender_email", "news@example.com"},
		{"smtp.password", "hunter2"},
		{"smtp.use_tls", "false"},
	} {
		_, err := h.run(t, "settings", "set", kv[0], kv[1])
		require.NoError(t, err)
	}

	out, err := h.run(t, "settings", "check")
	require.NoError(t, err)
	require.Contains(t, out, "warning: smtp.use_tls is off")
	require.Contains(t, out, "smtp settings are valid")

	_, err = h.run(t, "settings", "set", "smtp.server", "localhost")
	require.NoError(t, err)
	out, err = h.run(t, "settings", "check")
	require.NoError(t, err)
	require.Equal(t, "smtp settings are valid\n", out)
}

func TestPlaintextAuth(t *testing.T) {
	t.Parallel()

	base := func() *settings.Settings {
		s := settings.Default()
		s.SMTP.Server = "smtp.example.com"
		s.SMTP.SenderEmail = "news@example.com"
		s.SMTP.SenderPassword = "secret"
		s.SMTP.UseTLS = false
		return s
	}

	require.True(t, plaintextAuth(base()))

	s := base()
	s.SMTP.UseTLS = true
	require.False(t, plaintextAuth(s))

	s = base()
	s.SMTP.Server = "127.0.0.1"
	require.False(t, plaintextAuth(s))

	s = base()
	s.SMTP.SenderPassword = ""
	require.False(t, plaintextAuth(s))

	s = base()
	s.Provider = settings.ProviderSES
	require.False(t, plaintextAuth(s))
}

func TestRecipientsCommand(t *testing.T) {
	t.Parallel()

	t.Run("local file", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		path := h.writeFile(t, "list.csv", recipientsCSV)

		out, err := h.run(t, "recipients", path)
		require.NoError(t, err)
		require.Contains(t, out, "ann@example.com")
		require.Contains(t, out, "bob@example.com")
		require.NotContains(t, out, "not-an-email")
		require.True(t, strings.HasSuffix(out, "2 recipients\n"))
	})

	t.Run("s3 object", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.storage.objects["october/list.csv"] = []byte(recipientsCSV)

		out, err := h.run(t, "recipients", "s3://lists/october/list.csv", "--limit", "1")
		require.NoError(t, err)
		require.Contains(t, out, "ann@example.com")
		require.NotContains(t, out, "bob@example.com")
		require.Contains(t, out, "2 recipients")
		require.Equal(t, "lists", h.storage.configs[0].Bucket)
	})

	t.Run("missing columns", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		path := h.writeFile(t, "bad.csv", "Email,Name\na@example.com,Ann\n")

		_, err := h.run(t, "recipients", path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "first_name")
	})
}

func TestSendCommand_Validation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	list := h.writeFile(t, "list.csv", recipientsCSV)

	_, err := h.run(t, "send", "-f", list, "--body", "Hello")
	require.ErrorContains(t, err, "subject is required")

	_, err = h.run(t, "send", "-f", list, "-s", "News")
	require.ErrorContains(t, err, "body is required")

	_, err = h.run(t, "send", "-s", "News", "--body", "Hello")
	require.Error(t, err)

	_, err = h.run(t, "send", "-f", list, "-s", "News", "--body", "Hello", "--provider", "mailgun")
	require.ErrorIs(t, err, settings.ErrUnknownProvider)

	_, err = h.run(t, "send", "-f", list, "-s", "News", "--body", "Hello", "--tag", "=october")
	require.ErrorContains(t, err, "name is required")

	empty := h.writeFile(t, "empty.csv", "email,first_name,last_name\nbad,A,B\n")
	_, err = h.run(t, "send", "-f", empty, "-s", "News", "--body", "Hello")
	require.ErrorContains(t, err, "no valid recipients")
}

func TestSendCommand_InvalidSettingsWritesReport(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	list := h.writeFile(t, "list.csv", recipientsCSV)
	tmpl := h.writeFile(t, "news.md", "---\nSubject: October news\n---\nHello {first_name}\n")
	reportPath := filepath.Join(h.dir, "report.json")

	out, err := h.run(t, "send", "-f", list, "--template", tmpl, "--report", reportPath)
	require.ErrorIs(t, err, mailer.ErrConnection)
	require.ErrorIs(t, err, settings.ErrInvalidSettings)
	require.Contains(t, out, "Sending to 2 recipients via smtp")
	require.Contains(t, out, "Sent 0 of 2 emails")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report mailer.Report
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, 2, report.Total)
	require.Equal(t, "smtp", report.Provider)
	require.NotEmpty(t, report.ID)
}

func TestSendCommand_ReportToS3(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.storage.objects["list.csv"] = []byte(recipientsCSV)

	out, err := h.run(t, "send", "-f", "s3://lists/list.csv", "-s", "News", "--body", "Hi",
		"--provider", "ses", "--report", "s3://reports/october/")
	require.ErrorIs(t, err, mailer.ErrConnection)
	require.Contains(t, out, "via ses")
	require.Contains(t, out, "Report saved to s3://reports/report.json")

	require.Len(t, h.storage.configs, 2)
	require.Equal(t, "reports", h.storage.configs[1].Bucket)
	require.NotEmpty(t, h.storage.configs[1].Region)
	require.Contains(t, string(h.storage.objects["report.json"]), `"provider": "ses"`)
}

func TestResolveTemplate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	tmplPath := h.writeFile(t, "news.md", "---\nSubject: From file\n---\nFile body")
	bodyPath := h.writeFile(t, "body.txt", "Body from file")

	tmpl, err := resolveTemplate(&sendFlags{template: tmplPath})
	require.NoError(t, err)
	require.Equal(t, "From file", tmpl.Subject)
	require.Equal(t, "File body", tmpl.Body)

	tmpl, err = resolveTemplate(&sendFlags{template: tmplPath, subject: "Override", bodyFile: bodyPath})
	require.NoError(t, err)
	require.Equal(t, "Override", tmpl.Subject)
	require.Equal(t, "Body from file", tmpl.Body)
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tags, err := parseTags([]string{"newsletter", "campaign=october", " team = growth "})
	require.NoError(t, err)
	require.Equal(t, mailer.Tags{
		"newsletter": struct{}{},
		"campaign":   "october",
		"team":       "growth",
	}, tags)

	tags, err = parseTags(nil)
	require.NoError(t, err)
	require.Empty(t, tags)

	_, err = parseTags([]string{"=value"})
	require.Error(t, err)
}
