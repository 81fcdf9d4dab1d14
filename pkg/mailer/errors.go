package mailer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRecipient indicates a message without recipients.
	ErrNoRecipient = errors.New("message must have at least one recipient")

	// ErrConnection indicates the transport could not establish a session.
	ErrConnection = errors.New("failed to connect")

	// ErrPartialFailure indicates one or more recipients could not be sent to.
	ErrPartialFailure = errors.New("failed to send to some recipients")

	// ErrSendFailed indicates a generic per-recipient delivery failure.
	ErrSendFailed = errors.New("failed to send email")

	// ErrRejected indicates the provider refused the message.
	ErrRejected = errors.New("message rejected by provider")

	// ErrRender indicates a message body could not be rendered.
	ErrRender = errors.New("failed to render message")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")
)

// maxFailureSamples caps the failures listed in a PartialFailureError message.
const maxFailureSamples = 5

// ConnectionError reports a transport that never reached the connected
// state. No message was attempted.
type ConnectionError struct {
	Provider string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Provider, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// PartialFailureError is returned after the send loop when at least one
// recipient failed. Report holds the complete outcome.
type PartialFailureError struct {
	Report *Report
}

func (e *PartialFailureError) Error() string {
	failures := e.Report.Failures

	var b strings.Builder
	fmt.Fprintf(&b, "failed to send to %d recipients:", len(failures))
	for i, f := range failures {
		if i == maxFailureSamples {
			fmt.Fprintf(&b, "\n... and %d more", len(failures)-maxFailureSamples)
			break
		}
		fmt.Fprintf(&b, "\n%s: %s", f.Email, f.Reason)
	}
	return b.String()
}

func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure
}
