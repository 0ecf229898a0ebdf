// Package session owns the credential/session lifecycle: hydration from the
// durable store, login, registration, logout and best-effort identity refresh.
package session

import "github.com/zapdesk/zapdesk/internal/client/models"

// Session is the authenticated identity plus its bearer credential. Token and
// User are always set together; a Session with only one of them never exists,
// neither in memory nor durably.
type Session struct {
	Token string
	User  *models.User
}

// Destination tells the caller where to navigate after a successful primary
// operation.
type Destination string

const (
	// DestDashboard is the default post-login destination.
	DestDashboard Destination = "dashboard"

	// DestOnboarding routes accounts that have not finished the one-time
	// setup flow.
	DestOnboarding Destination = "onboarding"
)

// Result is the outcome of a primary auth operation. Primary operations
// always resolve to a Result; they never leak raw transport errors.
type Result struct {
	Success     bool
	Error       string
	Destination Destination
}
