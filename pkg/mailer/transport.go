package mailer

import (
	"context"
	"time"
)

// Transport opens delivery sessions for a single provider.
// Implementations must not attempt delivery until Connect succeeds.
type Transport interface {
	// Name identifies the provider in logs and errors ("smtp", "ses").
	Name() string

	// Connect establishes an authenticated session.
	// Any error aborts the dispatch before a message is sent.
	Connect(ctx context.Context) (Session, error)

	// Delay is the pause applied after each successful send.
	Delay() time.Duration
}

// Session delivers messages over an established connection or client.
type Session interface {
	// Send delivers one message. Errors are per-message and do not
	// invalidate the session.
	Send(ctx context.Context, msg *Message) error

	// Close releases the session. Stateless API sessions return nil.
	Close() error
}
