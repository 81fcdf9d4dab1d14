package recipient

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns indicates the header lacks one of the required roles.
	ErrMissingColumns = errors.New("recipient: missing required columns")

	// ErrLoad indicates the input could not be read or parsed as CSV.
	ErrLoad = errors.New("recipient: failed to load list")
)

// Column roles reported by MissingColumnsError.
const (
	RoleEmail     = "email"
	RoleFirstName = "first_name"
	RoleLastName  = "last_name"
)

// MissingColumnsError lists the roles that could not be resolved and the
// header names that were available.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s\navailable columns: %s",
		strings.Join(e.Missing, ", "),
		strings.Join(e.Available, ", "),
	)
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// LoadError wraps an I/O or parse failure.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to load recipients: %v", e.Err)
	}
	return fmt.Sprintf("failed to load recipients from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
