package recipient

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ObjectGetter reads an object by key. storage.S3Storage implements it.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Load reads a recipient list from a CSV file on disk.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	set, err := parse(f)
	if err != nil {
		return nil, withSource(err, path)
	}
	return set, nil
}

// LoadReader reads a recipient list from r.
func LoadReader(r io.Reader) (Set, error) {
	return parse(r)
}

// LoadObject reads a recipient list stored under key.
func LoadObject(ctx context.Context, getter ObjectGetter, key string) (Set, error) {
	body, err := getter.Get(ctx, key)
	if err != nil {
		return nil, &LoadError{Source: key, Err: err}
	}
	defer body.Close()

	set, err := parse(body)
	if err != nil {
		return nil, withSource(err, key)
	}
	return set, nil
}

func parse(r io.Reader) (Set, error) {
	// Spreadsheet exports often start with a byte-order mark that would
	// otherwise stick to the first header name.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: errors.New("file is empty")}
		}
		return nil, &LoadError{Err: err}
	}
	header = append([]string(nil), header...)

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	set := Set{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Err: err}
		}

		email := field(row, cols.email)
		if email == "" || !IsValidEmail(email) {
			continue
		}

		set = append(set, Recipient{
			Email:     email,
			FirstName: field(row, cols.firstName),
			LastName:  field(row, cols.lastName),
		})
	}

	return set, nil
}

func withSource(err error, source string) error {
	var le *LoadError
	if errors.As(err, &le) && le.Source == "" {
		le.Source = source
	}
	return err
}
