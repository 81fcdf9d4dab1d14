package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/dmitrymomot/massmail/pkg/recipient"
	"github.com/dmitrymomot/massmail/pkg/settings"
	"github.com/dmitrymomot/massmail/pkg/storage"
)

// storageConfig reads S3 access from the environment, falling back to the
// SES credentials in s so one AWS key pair can serve both.
func storageConfig(bucket string, s *settings.Settings) storage.Config {
	env := viper.New()
	env.AutomaticEnv()

	cfg := storage.Config{
		Bucket:        bucket,
		AccessKey:     env.GetString("AWS_ACCESS_KEY_ID"),
		SecretKey:     env.GetString("AWS_SECRET_ACCESS_KEY"),
		Region:        env.GetString("AWS_REGION"),
		Endpoint:      env.GetString("MASSMAIL_S3_ENDPOINT"),
		PathStyle:     env.GetBool("MASSMAIL_S3_PATH_STYLE"),
		MaxObjectSize: env.GetInt64("MASSMAIL_S3_MAX_OBJECT_SIZE"),
	}
	if s != nil {
		if cfg.AccessKey == "" && cfg.SecretKey == "" {
			cfg.AccessKey = s.SES.AccessKey
			cfg.SecretKey = s.SES.SecretKey
		}
		if cfg.Region == "" {
			cfg.Region = s.SES.Region
		}
	}
	return cfg
}

// loadRecipients reads a local CSV file or an s3:// object.
func (a *app) loadRecipients(ctx context.Context, source string, s *settings.Settings) (recipient.Set, error) {
	if !storage.IsURI(source) {
		return recipient.Load(source)
	}

	loc, err := storage.ParseURI(source)
	if err != nil {
		return nil, err
	}
	if loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
		return nil, fmt.Errorf("%w: %q does not name an object", storage.ErrInvalidURI, source)
	}

	store, err := a.openStorage(storageConfig(loc.Bucket, s))
	if err != nil {
		return nil, err
	}
	return recipient.LoadObject(ctx, store, loc.Key)
}

// saveReport writes data to a local path or an s3:// location. A bucket or
// prefix URI gets a generated object name. The returned string names where
// the report went.
func (a *app) saveReport(ctx context.Context, dest string, data []byte, s *settings.Settings) (string, error) {
	if !storage.IsURI(dest) {
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return "", fmt.Errorf("write report: %w", err)
		}
		return dest, nil
	}

	loc, err := storage.ParseURI(dest)
	if err != nil {
		return "", err
	}
	store, err := a.openStorage(storageConfig(loc.Bucket, s))
	if err != nil {
		return "", err
	}

	var opts []storage.Option
	if loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
		opts = append(opts, storage.WithPrefix(strings.TrimSuffix(loc.Key, "/")))
	} else {
		opts = append(opts, storage.WithKey(loc.Key))
	}

	info, err := storage.PutBytes(ctx, store, data, "application/json", opts...)
	if err != nil {
		return "", err
	}
	return storage.Location{Bucket: loc.Bucket, Key: info.Key}.String(), nil
}
