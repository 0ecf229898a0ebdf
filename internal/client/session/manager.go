package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/zapdesk/zapdesk/internal/client/api"
	"github.com/zapdesk/zapdesk/internal/client/models"
	"github.com/zapdesk/zapdesk/internal/client/repositories/sessionstore"
	"github.com/zapdesk/zapdesk/internal/logging"
)

// genericConnectivityError is what users see when the backend is unreachable
// or returns garbage. Raw transport errors never surface past this package.
const genericConnectivityError = "could not reach the server, please try again"

// Manager is the session state machine: Hydrating → {Anonymous, Authenticated},
// Authenticated → Anonymous on logout or detected corruption.
//
// Durable writes happen inside the same operation as the matching in-memory
// transition, so memory and storage never disagree for longer than one
// operation. Every async handler re-validates session liveness (epoch) before
// applying its result, which makes a refresh racing a logout harmless.
type Manager struct {
	api   api.Client
	store sessionstore.Repository
	log   logging.Logger

	mu        sync.RWMutex
	session   *Session
	loading   bool
	hydrated  bool
	epoch     uint64
	listeners []func(*Session)
}

// NewManager builds a manager in the Hydrating state. Loading reports true
// until Hydrate has resolved.
func NewManager(apiClient api.Client, store sessionstore.Repository, log logging.Logger) *Manager {
	return &Manager{
		api:     apiClient,
		store:   store,
		log:     log,
		loading: true,
	}
}

// OnChange registers a listener invoked with the new session (nil when the
// session is cleared) after every transition. Listeners run synchronously on
// the mutating goroutine and must not block.
func (m *Manager) OnChange(fn func(*Session)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Loading reports whether hydration is still pending. Dependent callers must
// not act on session state before this turns false.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Current returns the active session, or nil when anonymous.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Hydrate reads the durable (token, user) pair and resolves the Hydrating
// state. It runs at most once per process; later calls are no-ops. A pair
// that is incomplete or whose user record fails to parse is treated as
// corruption: the store is wiped and the manager lands in Anonymous.
func (m *Manager) Hydrate(ctx context.Context) error {
	m.mu.Lock()
	if m.hydrated {
		m.mu.Unlock()
		return nil
	}
	m.hydrated = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, rawUser, err := m.store.LoadPair(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read durable session", "error", err)
		return err
	}

	if token == "" && len(rawUser) == 0 {
		return nil
	}

	var user models.User
	if token == "" || len(rawUser) == 0 || json.Unmarshal(rawUser, &user) != nil || user.ID == "" {
		m.log.Warn(ctx, "durable session corrupt, clearing store")
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.log.Error(ctx, "failed to clear corrupt session", "error", cerr)
		}
		return nil
	}

	m.install(ctx, &Session{Token: token, User: &user}, false)
	return nil
}

// Login authenticates against the backend. On success the pair is persisted
// and a best-effort onboarding check decides the destination; a failing check
// never fails the login.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	token, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return failedResult(err)
	}

	m.install(ctx, &Session{Token: token, User: user}, true)

	dest := DestDashboard
	completed, oerr := m.api.OnboardingStatus(ctx)
	if oerr != nil {
		m.log.Debug(ctx, "onboarding check failed after login, defaulting to dashboard", "error", oerr)
	} else if !completed {
		dest = DestOnboarding
	}

	return Result{Success: true, Destination: dest}
}

// Register creates a new account. A fresh account is onboarding-incomplete by
// definition, so the destination is always onboarding and no gate check runs.
func (m *Manager) Register(ctx context.Context, name, email, password string) Result {
	token, user, err := m.api.Register(ctx, name, email, password)
	if err != nil {
		return failedResult(err)
	}

	m.install(ctx, &Session{Token: token, User: user}, true)
	return Result{Success: true, Destination: DestOnboarding}
}

// Logout clears the in-memory and durable session unconditionally. Calling it
// without an active session is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	had := m.session != nil
	m.session = nil
	m.epoch++
	m.mu.Unlock()

	m.api.SetToken("")
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear durable session", "error", err)
	}
	if had {
		m.notify(nil)
	}
}

// RefreshUser re-fetches the identity record and replaces the in-memory and
// durable copies. Failures are logged and swallowed: a transient fetch error
// must not log the user out. A refresh resolving after the session changed is
// discarded.
func (m *Manager) RefreshUser(ctx context.Context) {
	m.mu.RLock()
	if m.session == nil {
		m.mu.RUnlock()
		return
	}
	epoch := m.epoch
	m.mu.RUnlock()

	user, err := m.api.Me(ctx)
	if err != nil {
		m.log.Warn(ctx, "identity refresh failed, keeping stale user", "error", err)
		return
	}

	m.mu.Lock()
	if m.epoch != epoch || m.session == nil {
		m.mu.Unlock()
		m.log.Debug(ctx, "discarding stale identity refresh")
		return
	}
	m.session = &Session{Token: m.session.Token, User: user}
	current := *m.session
	m.mu.Unlock()

	raw, merr := json.Marshal(user)
	if merr != nil {
		m.log.Error(ctx, "failed to serialize refreshed user", "error", merr)
	} else if serr := m.store.SaveUser(ctx, raw); serr != nil {
		m.log.Error(ctx, "failed to persist refreshed user", "error", serr)
	}

	m.notify(&current)
}

// install makes s the active session, optionally persisting the pair, and
// tells the listeners.
func (m *Manager) install(ctx context.Context, s *Session, persist bool) {
	m.mu.Lock()
	m.session = s
	m.epoch++
	m.mu.Unlock()

	m.api.SetToken(s.Token)

	if persist {
		raw, err := json.Marshal(s.User)
		if err != nil {
			m.log.Error(ctx, "failed to serialize user", "error", err)
		} else if err := m.store.SavePair(ctx, s.Token, raw); err != nil {
			m.log.Error(ctx, "failed to persist session pair", "error", err)
		}
	}

	m.notify(s)
}

func (m *Manager) notify(s *Session) {
	m.mu.RLock()
	listeners := make([]func(*Session), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(s)
	}
}

// failedResult converts an API error into a user-facing Result: backend
// messages verbatim, everything else behind a generic connectivity message.
func failedResult(err error) Result {
	var be *api.BackendError
	if errors.As(err, &be) {
		return Result{Success: false, Error: be.Message}
	}
	return Result{Success: false, Error: genericConnectivityError}
}
