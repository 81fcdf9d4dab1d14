package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/massmail/pkg/recipient"
)

func TestRenderBody(t *testing.T) {
	t.Parallel()

	al := recipient.Recipient{Email: "a@x.com", FirstName: "Al", LastName: "Ng"}

	tests := []struct {
		name string
		body string
		r    recipient.Recipient
		want string
	}{
		{
			name: "first name placeholder",
			body: "Thanks, {first_name}!",
			r:    al,
			want: "Dear Al Ng,\n\nThanks, Al!",
		},
		{
			name: "all placeholders repeated",
			body: "{first_name} {last_name} <{email}> / {email}",
			r:    al,
			want: "Dear Al Ng,\n\nAl Ng <a@x.com> / a@x.com",
		},
		{
			name: "unknown tokens kept",
			body: "Hi {nickname}, {EMAIL} {first_name",
			r:    al,
			want: "Dear Al Ng,\n\nHi {nickname}, {EMAIL} {first_name",
		},
		{
			name: "empty body",
			body: "",
			r:    al,
			want: "Dear Al Ng,\n\n",
		},
		{
			name: "empty names",
			body: "Hello",
			r:    recipient.Recipient{Email: "a@x.com"},
			want: "Dear  ,\n\nHello",
		},
		{
			name: "name spelling a token is expanded",
			body: "",
			r:    recipient.Recipient{Email: "a@x.com", FirstName: "{last_name}", LastName: "Ng"},
			want: "Dear Ng Ng,\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, RenderBody(tt.body, tt.r))
		})
	}
}

func TestRenderBody_GreetingPrefix(t *testing.T) {
	t.Parallel()

	r := recipient.Recipient{Email: "ann@example.com", FirstName: "Ann", LastName: "Lee"}
	bodies := []string{"", "plain", "{email}", "line1\nline2 {last_name}"}

	for _, body := range bodies {
		out := RenderBody(body, r)
		require.True(t, strings.HasPrefix(out, "Dear Ann Lee,\n\n"), out)
	}
}

func TestRenderBody_Idempotent(t *testing.T) {
	t.Parallel()

	r := recipient.Recipient{Email: "ann@example.com", FirstName: "Ann", LastName: "Lee"}
	body := "Hello {first_name}, your address is {email}."

	require.Equal(t, RenderBody(body, r), RenderBody(body, r))
}
