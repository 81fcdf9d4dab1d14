package mailer

import "fmt"

const (
	// HeaderDispatchID carries the dispatch identifier on every message.
	HeaderDispatchID = "X-Massmail-Dispatch-ID"
	// TagDispatchID is the provider tag holding the dispatch identifier.
	TagDispatchID = "dispatch_id"
)

// Tags are provider-specific message labels. Presence-only tags use
// struct{}{} as value.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Address formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is one rendered message ready for a Session.
type Message struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags
	Subject string
	Text    string   // Plain text body (always set)
	HTML    string   // Optional HTML alternative
	To      []string // Recipients (exactly one for bulk sends)
}

// MessageTemplate is the subject and body shared by every recipient of a
// dispatch. Body may contain {email}, {first_name} and {last_name}.
type MessageTemplate struct {
	Subject string `json:"subject" yaml:"Subject"`
	Body    string `json:"body" yaml:"-"`
}
