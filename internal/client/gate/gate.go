// Package gate guards protected navigation behind the onboarding flow.
package gate

import (
	"context"

	"github.com/zapdesk/zapdesk/internal/client/session"
	"github.com/zapdesk/zapdesk/internal/logging"
)

// Decision is the outcome of evaluating the gate.
type Decision int

const (
	// Allow lets the navigation through.
	Allow Decision = iota

	// RedirectLogin sends anonymous callers to the login flow.
	RedirectLogin

	// RedirectOnboarding sends authenticated but not-yet-onboarded callers
	// to the setup flow.
	RedirectOnboarding
)

func (d Decision) String() string {
	switch d {
	case RedirectLogin:
		return "login"
	case RedirectOnboarding:
		return "onboarding"
	default:
		return "allow"
	}
}

// statusClient is the single backend call the gate needs.
type statusClient interface {
	OnboardingStatus(ctx context.Context) (bool, error)
}

// sessionSource is what the gate needs to know about the session.
type sessionSource interface {
	IsAuthenticated() bool
}

// Gate decides, per evaluation, whether a protected destination is reachable.
// The status is queried fresh every time, never cached: evaluation happens on
// every mount and on every identity change.
type Gate struct {
	sessions sessionSource
	status   statusClient
	log      logging.Logger
}

// New wires the gate to a session source (normally *session.Manager) and the
// status endpoint client.
func New(sessions sessionSource, status statusClient, log logging.Logger) *Gate {
	return &Gate{sessions: sessions, status: status, log: log}
}

var _ sessionSource = (*session.Manager)(nil)

// Evaluate blocks until a decision is available, so callers render their
// pending state for the whole call instead of flashing a redirect.
//
// A failing status query fails open: a down status endpoint must not lock
// users out of the product.
func (g *Gate) Evaluate(ctx context.Context) Decision {
	if !g.sessions.IsAuthenticated() {
		return RedirectLogin
	}

	completed, err := g.status.OnboardingStatus(ctx)
	if err != nil {
		g.log.Debug(ctx, "onboarding status query failed, allowing through", "error", err)
		return Allow
	}
	if !completed {
		return RedirectOnboarding
	}
	return Allow
}
