package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/zapdesk/zapdesk/internal/client/api"
	"github.com/zapdesk/zapdesk/internal/client/config"
	"github.com/zapdesk/zapdesk/internal/client/gate"
	"github.com/zapdesk/zapdesk/internal/client/models"
	"github.com/zapdesk/zapdesk/internal/client/notify"
	"github.com/zapdesk/zapdesk/internal/client/repositories/sessionstore"
	"github.com/zapdesk/zapdesk/internal/client/session"
	"github.com/zapdesk/zapdesk/internal/client/toast"
	"github.com/zapdesk/zapdesk/internal/logging"
)

// sessionService is the slice of the session manager the CLI uses.
type sessionService interface {
	Hydrate(ctx context.Context) error
	Login(ctx context.Context, email, password string) session.Result
	Register(ctx context.Context, name, email, password string) session.Result
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context)
	Current() *session.Session
	IsAuthenticated() bool
}

// feedService is the slice of the notification runtime the CLI uses.
type feedService interface {
	Refresh(ctx context.Context) error
	Notifications() []models.Notification
	UnreadCount() int
	MarkAsRead(ctx context.Context, id string)
	MarkAllAsRead(ctx context.Context)
}

type gateService interface {
	Evaluate(ctx context.Context) gate.Decision
}

type toastService interface {
	Success(title, message string) string
	Error(title, message string) string
	Toasts() []toast.Toast
}

// App glues the client services to the interactive loop.
type App struct {
	config   *config.Config
	log      logging.Logger
	sessions sessionService
	feed     feedService
	gate     gateService
	toasts   toastService
	reader   *bufio.Reader

	closers []func()
}

// NewApp wires the full client stack from config: SQLite session store, REST
// API client, session manager, notification poller, onboarding gate, and
// toast queue. The notification runtime subscribes to session changes here,
// so polling starts and stops with the session.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := sessionstore.Open(ctx, c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointURL, nil)
	sessions := session.NewManager(apiClient, store, log)

	clock := clockwork.NewRealClock()
	feed := notify.NewRuntime(apiClient, clock, c.PollInterval, log)
	sessions.OnChange(feed.HandleSessionChange)

	toasts := toast.NewQueue(clock, c.ToastTTL)

	a := &App{
		config:   c,
		log:      log,
		sessions: sessions,
		feed:     feed,
		gate:     gate.New(sessions, apiClient, log),
		toasts:   toasts,
		reader:   bufio.NewReader(os.Stdin),
	}
	a.closers = append(a.closers,
		toasts.Close,
		feed.Close,
		func() { _ = apiClient.Close() },
		func() { _ = store.Close() },
	)
	return a, nil
}

// Close releases everything NewApp opened. Safe to call repeatedly.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}

// status renders the prompt decoration: the user's email and the unread
// counter when logged in, empty otherwise.
func (a *App) status() string {
	s := a.sessions.Current()
	if s == nil || s.User == nil {
		return ""
	}
	status := s.User.Email
	if n := a.feed.UnreadCount(); n > 0 {
		status = fmt.Sprintf("%s, %d unread", status, n)
	}
	return "(" + status + ")"
}

// Run hydrates the stored session, reports where the onboarding gate would
// send the user, and enters the REPL. Blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.sessions.Hydrate(ctx); err != nil {
		a.log.Error(ctx, "session hydration failed", "error", err)
	}

	printlnFn("Welcome to ZapDesk CLI (type 'help' for commands)")
	printlnFn("Landing:", a.gate.Evaluate(ctx).String())

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
