package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvPrefix is prepended to environment overrides.
const DefaultEnvPrefix = "MASSMAIL"

const (
	defaultDir  = ".mass_email_sender"
	defaultFile = "email_settings.json"
)

// defaults lists every known key. Viper only resolves environment
// overrides for keys it knows about.
var defaults = []struct {
	value any
	key   string
}{
	{key: "provider", value: string(ProviderSMTP)},
	{key: "smtp.server", value: ""},
	{key: "smtp.port", value: DefaultSMTPPort},
	{key: "smtp.use_tls", value: true},
	{key: "smtp.sender_email", value: ""},
	{key: "smtp.password", value: ""},
	{key: "ses.access_key", value: ""},
	{key: "ses.secret_key", value: ""},
	{key: "ses.region", value: DefaultSESRegion},
	{key: "ses.sender_email", value: ""},
	{key: "resend.api_key", value: ""},
	{key: "resend.sender_email", value: ""},
	{key: "resend.sender_name", value: ""},
}

// legacyKeys maps the flat keys of older settings files to nested keys.
var legacyKeys = map[string]string{
	"smtp_server":      "smtp.server",
	"smtp_port":        "smtp.port",
	"use_tls":          "smtp.use_tls",
	"sender_email":     "smtp.sender_email",
	"sender_password":  "smtp.password",
	"aws_access_key":   "ses.access_key",
	"aws_secret_key":   "ses.secret_key",
	"aws_region":       "ses.region",
	"ses_sender_email": "ses.sender_email",
}

// Keys returns the settable keys in display order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for _, d := range defaults {
		keys = append(keys, d.key)
	}
	return keys
}

// DefaultPath returns ~/.mass_email_sender/email_settings.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("settings: resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultDir, defaultFile), nil
}

// Store reads and writes a settings file.
type Store struct {
	path      string
	envPrefix string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEnvPrefix changes the environment override prefix.
// An empty prefix disables overrides.
func WithEnvPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.envPrefix = prefix
	}
}

// NewStore creates a store for path. An empty path selects DefaultPath,
// falling back to the working directory when the home directory is unknown.
func NewStore(path string, opts ...StoreOption) *Store {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			p = defaultFile
		}
		path = p
	}
	s := &Store{path: path, envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored settings with environment overrides applied.
// A missing file yields Default values.
func (s *Store) Load() (*Settings, error) {
	return s.read(s.envPrefix != "")
}

// Save writes settings in the nested form, replacing the file atomically.
func (s *Store) Save(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := writeFileAtomic(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("settings: save %s: %w", s.path, err)
	}
	return nil
}

// Set updates a single key in the stored file and saves it. Environment
// overrides are not applied so they never leak into the file.
func (s *Store) Set(key, value string) (*Settings, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(Keys(), key) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if key == "provider" {
		p, err := ParseProvider(value)
		if err != nil {
			return nil, err
		}
		value = string(p)
	}

	v, err := s.viper(false)
	if err != nil {
		return nil, err
	}
	v.Set(key, value)

	settings, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := s.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Store) read(env bool) (*Settings, error) {
	v, err := s.viper(env)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

func (s *Store) viper(env bool) (*viper.Viper, error) {
	v := viper.New()
	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
	}

	if env {
		v.SetEnvPrefix(s.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("settings: stat %s: %w", s.path, err)
	}

	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", s.path, err)
	}

	// Flat values rank below nested ones and the environment.
	for old, key := range legacyKeys {
		if v.InConfig(old) {
			v.SetDefault(key, v.Get(old))
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (*Settings, error) {
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("settings: decode: %w", err)
	}
	settings.Provider = NormalizeProvider(string(settings.Provider))
	return &settings, nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
