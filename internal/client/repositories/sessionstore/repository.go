// Package sessionstore persists the durable (token, user) session pair in a
// local key-value table. The pair is written and cleared atomically: durable
// state never holds a token without a user or vice versa.
package sessionstore

import "context"

// Repository is the durable storage contract the session manager relies on.
type Repository interface {
	// LoadPair returns the stored token and serialized user record. Both are
	// zero-valued when no session is stored.
	LoadPair(ctx context.Context) (token string, user []byte, err error)

	// SavePair stores token and user in one transaction.
	SavePair(ctx context.Context, token string, user []byte) error

	// SaveUser replaces only the user record; the token stays untouched.
	// Used by identity refresh.
	SaveUser(ctx context.Context, user []byte) error

	// Clear removes both keys in one transaction. Clearing an empty store
	// is a no-op.
	Clear(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
