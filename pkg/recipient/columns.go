package recipient

import "strings"

// columns holds the header index resolved for each role, -1 when unresolved.
type columns struct {
	email     int
	firstName int
	lastName  int
}

func isEmailColumn(name string) bool {
	return strings.Contains(name, "email") || name == "e-mail"
}

func isFirstNameColumn(name string) bool {
	return (strings.Contains(name, "first") && strings.Contains(name, "name")) || name == "firstname"
}

func isLastNameColumn(name string) bool {
	return (strings.Contains(name, "last") && strings.Contains(name, "name")) || name == "lastname"
}

// resolveColumns maps header names to roles. A column claims at most one
// role, tested in email, first-name, last-name order, and the first column
// matching a role wins it.
func resolveColumns(header []string) (columns, error) {
	c := columns{email: -1, firstName: -1, lastName: -1}

	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case isEmailColumn(name):
			if c.email < 0 {
				c.email = i
			}
		case isFirstNameColumn(name):
			if c.firstName < 0 {
				c.firstName = i
			}
		case isLastNameColumn(name):
			if c.lastName < 0 {
				c.lastName = i
			}
		}
	}

	var missing []string
	if c.email < 0 {
		missing = append(missing, RoleEmail)
	}
	if c.firstName < 0 {
		missing = append(missing, RoleFirstName)
	}
	if c.lastName < 0 {
		missing = append(missing, RoleLastName)
	}
	if len(missing) > 0 {
		available := make([]string, len(header))
		for i, h := range header {
			available[i] = strings.TrimSpace(h)
		}
		return c, &MissingColumnsError{Missing: missing, Available: available}
	}

	return c, nil
}

// field returns the trimmed cell at idx, or "" for short rows.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
