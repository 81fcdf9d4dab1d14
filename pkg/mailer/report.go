package mailer

import "time"

// Failure records one recipient that could not be sent to.
type Failure struct {
	Err    error  `json:"-"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// Report summarizes a dispatch. It is built by SendAll and not modified once
// returned.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	ID         string    `json:"id,omitempty"`
	Provider   string    `json:"provider"`
	Failures   []Failure `json:"failures"`
	Total      int       `json:"total"`
	Sent       int       `json:"sent"`
}

// Attempted returns the number of recipients a send was tried for.
func (r *Report) Attempted() int {
	return r.Sent + len(r.Failures)
}

// Failed returns the number of failed recipients.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// Progress is emitted once per attempted recipient, in recipient order.
type Progress struct {
	Err     error  // Non-nil when the attempt failed
	Email   string // Recipient address
	Message string // Human-readable status line
	Current int    // 1-based attempt number
	Total   int    // Number of recipients in the dispatch
}

// ProgressFunc receives progress events synchronously from the send loop.
type ProgressFunc func(Progress)

// Elapsed returns how long the dispatch ran.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
