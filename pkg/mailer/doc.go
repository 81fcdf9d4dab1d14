// Package mailer renders personalized messages and delivers them one by one
// through a pluggable Transport.
//
// # Architecture
//
//   - Transport: opens a delivery Session for one dispatch (SMTP connection,
//     SES client, Resend client)
//   - Session: delivers a single Message and releases its resources on Close
//   - RenderBody: prepends the greeting and substitutes placeholders
//   - SendAll: the sequential send loop shared by every transport
//
// # Rendering
//
// Bodies support three placeholders: {email}, {first_name} and {last_name}.
// A greeting line is always prepended:
//
//	body := mailer.RenderBody("Thanks, {first_name}!", recipient.Recipient{
//		Email: "a@x.com", FirstName: "Al", LastName: "Ng",
//	})
//	// "Dear Al Ng,\n\nThanks, Al!"
//
// Unknown {tokens} are left as they are. With WithMarkdown the rendered body
// is also converted to sanitized HTML and attached as an alternative part.
//
// # Sending
//
//	report, err := mailer.SendAll(ctx, transport, set, mailer.MessageTemplate{
//		Subject: "October update",
//		Body:    body,
//	}, mailer.WithProgress(func(p mailer.Progress) {
//		fmt.Printf("[%d/%d] %s\n", p.Current, p.Total, p.Message)
//	}))
//
// Recipients are processed strictly in order. A failure on one recipient is
// recorded in the Report and the loop moves on. If the transport cannot
// connect, SendAll returns a *ConnectionError before any attempt. If at least
// one recipient failed, SendAll returns the full Report together with a
// *PartialFailureError.
//
// # Errors
//
//   - ErrConnection: the session could not be established
//   - ErrPartialFailure: one or more recipients failed
//   - ErrSendFailed: generic per-recipient delivery failure
//   - ErrRejected: the provider refused the message
//   - ErrRender: the HTML alternative could not be produced
//   - ErrNoRecipient: a message without recipients reached a session
//   - ErrInvalidFrontmatter: invalid YAML frontmatter in a template file
package mailer
