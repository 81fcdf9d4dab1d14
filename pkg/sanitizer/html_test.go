package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/massmail/pkg/sanitizer"
)

func TestEmailHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps paragraphs and emphasis",
			input:    `<p>Hello <strong>Al</strong> and <em>Ng</em></p>`,
			expected: `<p>Hello <strong>Al</strong> and <em>Ng</em></p>`,
		},
		{
			name:     "keeps headings and lists",
			input:    "<h2>News</h2>\n<ul>\n<li>one</li>\n</ul>",
			expected: "<h2>News</h2>\n<ul>\n<li>one</li>\n</ul>",
		},
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: `<p>Hello</p>`,
		},
		{
			name:     "strips javascript URLs",
			input:    `<a href="javascript:alert('xss')">click</a>`,
			expected: `click`,
		},
		{
			name:     "adds nofollow to links",
			input:    `<a href="https://example.com">site</a>`,
			expected: `<a href="https://example.com" rel="nofollow">site</a>`,
		},
		{
			name:     "strips event handlers",
			input:    `<p onclick="alert(1)">text</p>`,
			expected: `<p>text</p>`,
		},
		{
			name:     "strips iframe",
			input:    `<iframe src="https://evil.com"></iframe>content`,
			expected: `content`,
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			expected: "normal text without HTML",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizer.EmailHTML(tt.input))
		})
	}
}
