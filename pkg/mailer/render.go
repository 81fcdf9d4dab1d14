package mailer

import (
	"strings"

	"github.com/dmitrymomot/massmail/pkg/recipient"
)

// RenderBody prepends "Dear {first} {last},\n\n" to body and replaces every
// {email}, {first_name} and {last_name} token in the result.
//
// Tokens are replaced one after another over the whole string, greeting
// included, so a name value that itself spells a later token is expanded too.
func RenderBody(body string, r recipient.Recipient) string {
	out := "Dear " + r.FirstName + " " + r.LastName + ",\n\n" + body
	out = strings.ReplaceAll(out, "{email}", r.Email)
	out = strings.ReplaceAll(out, "{first_name}", r.FirstName)
	out = strings.ReplaceAll(out, "{last_name}", r.LastName)
	return out
}
