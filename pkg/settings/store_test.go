package settings_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/massmail/pkg/settings"
)

func tempStore(t *testing.T, opts ...settings.StoreOption) *settings.Store {
	t.Helper()
	opts = append([]settings.StoreOption{settings.WithEnvPrefix("")}, opts...)
	return settings.NewStore(filepath.Join(t.TempDir(), "cfg", "email_settings.json"), opts...)
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	s, err := tempStore(t).Load()
	require.NoError(t, err)
	require.Equal(t, settings.Default(), s)
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	want := &settings.Settings{
		Provider: settings.ProviderSMTP,
		SMTP:     validSMTP(),
		SES:      settings.SESSettings{Region: "eu-west-1"},
	}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, want, got)

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var nested map[string]any
	require.NoError(t, json.Unmarshal(raw, &nested))
	require.Contains(t, nested, "smtp")
	require.Contains(t, nested, "ses")
	require.Contains(t, nested, "resend")
}

func TestStore_LegacyFlatFile(t *testing.T) {
	t.Parallel()

	store := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	legacy := `{
  "provider": "AWS SES",
  "smtp_server": "smtp.example.com",
  "smtp_port": 2525,
  "use_tls": false,
  "sender_email": "news@example.com",
  "sender_password": "secret",
  "aws_access_key": "AKIA",
  "aws_secret_key": "aws-secret",
  "ses_sender_email": "ses@example.com"
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(legacy), 0o600))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, settings.ProviderSES, got.Provider)
	require.Equal(t, settings.SMTPSettings{
		Server:         "smtp.example.com",
		Port:           2525,
		UseTLS:         false,
		SenderEmail:    "news@example.com",
		SenderPassword: "secret",
	}, got.SMTP)
	require.Equal(t, settings.SESSettings{
		AccessKey:   "AKIA",
		SecretKey:   "aws-secret",
		Region:      settings.DefaultSESRegion,
		SenderEmail: "ses@example.com",
	}, got.SES)
	require.NoError(t, got.Validate())
}

func TestStore_Set(t *testing.T) {
	t.Parallel()

	store := tempStore(t)

	_, err := store.Set("smtp.server", "smtp.example.com")
	require.NoError(t, err)
	s, err := store.Set("smtp.port", "2525")
	require.NoError(t, err)
	require.Equal(t, "smtp.example.com", s.SMTP.Server)
	require.Equal(t, 2525, s.SMTP.Port)

	s, err = store.Set("provider", "AWS SES")
	require.NoError(t, err)
	require.Equal(t, settings.ProviderSES, s.Provider)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, s, loaded)

	_, err = store.Set("provider", "mailgun")
	require.ErrorIs(t, err, settings.ErrUnknownProvider)

	_, err = store.Set("smtp.hostname", "x")
	require.ErrorIs(t, err, settings.ErrUnknownKey)
}

func TestStore_EnvOverrides(t *testing.T) {
	t.Setenv("MASSMAIL_TEST_PROVIDER", "resend")
	t.Setenv("MASSMAIL_TEST_SMTP_PASSWORD", "from-env")
	t.Setenv("MASSMAIL_TEST_RESEND_API_KEY", "re_env")

	store := tempStore(t, settings.WithEnvPrefix("MASSMAIL_TEST"))
	require.NoError(t, store.Save(&settings.Settings{Provider: settings.ProviderSMTP, SMTP: validSMTP()}))

	got, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, settings.ProviderResend, got.Provider)
	require.Equal(t, "from-env", got.SMTP.SenderPassword)
	require.Equal(t, "re_env", got.Resend.APIKey)
	require.Equal(t, "smtp.example.com", got.SMTP.Server)

	// Set never persists environment values.
	s, err := store.Set("smtp.server", "relay.example.com")
	require.NoError(t, err)
	require.Equal(t, "secret", s.SMTP.SenderPassword)
	require.Equal(t, settings.ProviderSMTP, s.Provider)
}

func TestNewStore_DefaultPath(t *testing.T) {
	t.Parallel()

	want, err := settings.DefaultPath()
	require.NoError(t, err)
	require.Equal(t, want, settings.NewStore("").Path())
	require.Equal(t, filepath.Join(".mass_email_sender", "email_settings.json"),
		filepath.Join(filepath.Base(filepath.Dir(want)), filepath.Base(want)))
}
