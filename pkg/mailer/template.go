package mailer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTemplate splits a message file into its YAML frontmatter and body.
//
//	---
//	Subject: October update
//	---
//	Here is what happened this month, {first_name}.
//
// Files without frontmatter become a body with an empty subject.
func ParseTemplate(content []byte) (*MessageTemplate, error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return &MessageTemplate{Body: string(content)}, nil
	}

	afterFirst := bytes.TrimPrefix(content, delimiter)
	afterFirst = bytes.TrimLeft(afterFirst, "\n\r")

	if len(afterFirst) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	endIdx := bytes.Index(afterFirst, delimiter)
	if endIdx == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	frontmatter := afterFirst[:endIdx]
	bodyStart := endIdx + len(delimiter)
	// Skip one newline after the closing delimiter.
	if bodyStart < len(afterFirst) {
		if afterFirst[bodyStart] == '\r' && bodyStart+1 < len(afterFirst) && afterFirst[bodyStart+1] == '\n' {
			bodyStart += 2
		} else if afterFirst[bodyStart] == '\n' {
			bodyStart++
		}
	}

	tmpl := &MessageTemplate{}
	if len(bytes.TrimSpace(frontmatter)) > 0 {
		if err := yaml.Unmarshal(frontmatter, tmpl); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	tmpl.Subject = strings.TrimSpace(tmpl.Subject)
	tmpl.Body = string(afterFirst[bodyStart:])

	return tmpl, nil
}

// LoadTemplate reads and parses a message file from disk.
func LoadTemplate(path string) (*MessageTemplate, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return ParseTemplate(content)
}
