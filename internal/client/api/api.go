// Package api implements the HTTP+JSON client for the CRM backend.
//
// All calls honor context cancellation. Authenticated calls carry the bearer
// token set via SetToken; login and register are unauthenticated.
package api

import (
	"context"

	"github.com/zapdesk/zapdesk/internal/client/models"
)

// Client defines the backend operations the session and notification
// runtimes depend on. The concrete implementation is HTTPClient; tests
// provide fakes.
type Client interface {
	// Login exchanges credentials for a (token, user) pair.
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// Register creates an account and returns its (token, user) pair.
	Register(ctx context.Context, name, email, password string) (string, *models.User, error)

	// Me re-fetches the identity record of the current token.
	Me(ctx context.Context) (*models.User, error)

	// OnboardingStatus reports whether the one-time setup flow is complete.
	OnboardingStatus(ctx context.Context) (bool, error)

	// ListNotifications returns the full notification list, newest ordering
	// decided by the backend.
	ListNotifications(ctx context.Context) ([]*models.Notification, error)

	// MarkNotificationRead acknowledges a single notification.
	MarkNotificationRead(ctx context.Context, id string) error

	// SetToken installs (or, with "", clears) the bearer credential used by
	// authenticated calls.
	SetToken(token string)

	// Close releases underlying transport resources.
	Close() error
}
