// Package smtp delivers massmail messages through an SMTP relay.
//
// One connection is opened per dispatch and reused for every recipient until
// a send fails:
//
//	t := smtp.New(smtp.Config{
//		Host:     "smtp.example.com",
//		Port:     587,
//		UseTLS:   true,
//		Username: "news@example.com",
//		Password: os.Getenv("SMTP_PASSWORD"),
//		From:     "news@example.com",
//	})
//	report, err := mailer.SendAll(ctx, t, set, tmpl)
//
// A refused MAIL, RCPT or DATA leaves the relay's transaction open, and the
// relay then answers the next MAIL with 503. The session therefore closes
// the connection after any send error and dials a new one for the next
// recipient. A failed redial is reported against that recipient and tried
// again on the one after.
//
// With UseTLS the session upgrades through STARTTLS before authenticating
// and fails if the server does not offer it. Without UseTLS no upgrade is
// attempted, and PLAIN authentication is refused by the client for any host
// other than localhost, 127.0.0.1 or ::1. Plain text relays that require
// credentials only work on the loopback interface.
package smtp
