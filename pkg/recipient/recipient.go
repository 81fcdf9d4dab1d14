package recipient

import "regexp"

// Recipient is one validated destination address with its greeting names.
type Recipient struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Set is an ordered list of recipients in file row order.
type Set []Recipient

// Emails returns the addresses of the set in order.
func (s Set) Emails() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Email
	}
	return out
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether s looks like a deliverable address.
// It is a syntax check only.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
