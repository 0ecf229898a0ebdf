package devserver

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/zapdesk/zapdesk/internal/client/models"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)

type account struct {
	user         models.User
	passwordHash []byte
	onboarded    bool
}

// Store keeps all backend state in memory: accounts, onboarding flags, and
// per-user notification lists.
type Store struct {
	clock clockwork.Clock

	mu       sync.Mutex
	byEmail  map[string]*account
	byID     map[string]*account
	feeds    map[string][]*models.Notification
}

func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:   clock,
		byEmail: make(map[string]*account),
		byID:    make(map[string]*account),
		feeds:   make(map[string][]*models.Notification),
	}
}

// Register creates an account with a bcrypt-hashed password and seeds its
// notification feed with a welcome message.
func (s *Store) Register(name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	acc := &account{
		user: models.User{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			Role:         "sales_rep",
			Organization: "demo",
		},
		passwordHash: hash,
	}
	s.byEmail[email] = acc
	s.byID[acc.user.ID] = acc

	s.feeds[acc.user.ID] = []*models.Notification{{
		ID:        uuid.NewString(),
		Title:     "Welcome to ZapDesk",
		Message:   "Finish onboarding to start tracking your deals.",
		CreatedAt: s.clock.Now(),
	}}

	u := acc.user
	return &u, nil
}

// Authenticate verifies credentials and returns the identity record.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	s.mu.Lock()
	acc, ok := s.byEmail[email]
	s.mu.Unlock()

	if !ok {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	s.mu.Lock()
	u := acc.user
	s.mu.Unlock()
	return &u, nil
}

func (s *Store) UserByID(id string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	u := acc.user
	return &u, true
}

func (s *Store) Onboarded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.byID[id]
	return ok && acc.onboarded
}

func (s *Store) CompleteOnboarding(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.byID[id]; ok {
		acc.onboarded = true
	}
}

// Notifications returns value copies of the user's feed, newest first.
func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	feed := s.feeds[userID]
	out := make([]models.Notification, 0, len(feed))
	for _, n := range feed {
		out = append(out, *n)
	}
	return out
}

// AddNotification appends an unread notification to the user's feed and
// returns its id.
func (s *Store) AddNotification(userID, title, message string) string {
	n := &models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	s.mu.Lock()
	s.feeds[userID] = append([]*models.Notification{n}, s.feeds[userID]...)
	s.mu.Unlock()
	return n.ID
}

// MarkRead flips one notification to read. Returns false when the id does not
// belong to the user's feed. Marking an already read notification is a no-op
// that still reports success.
func (s *Store) MarkRead(userID, notifID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.feeds[userID] {
		if n.ID == notifID {
			n.Read = true
			return true
		}
	}
	return false
}
