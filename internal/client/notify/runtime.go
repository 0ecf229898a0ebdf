// Package notify keeps the durable notification feed synchronized with the
// backend while a session is active.
//
// The runtime observes the session manager: a session appearing starts an
// immediate fetch plus interval polling; the session disappearing cancels the
// poller and clears the list. The feed is replaced wholesale on every fetch,
// never merged, and read-state mutations are optimistic with reconciliation
// on the next poll.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zapdesk/zapdesk/internal/client/models"
	"github.com/zapdesk/zapdesk/internal/client/session"
	"github.com/zapdesk/zapdesk/internal/logging"
)

// DefaultInterval is how often the feed is re-fetched while a session exists.
const DefaultInterval = 60 * time.Second

// feedClient is the slice of the backend API the runtime needs.
type feedClient interface {
	ListNotifications(ctx context.Context) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
}

// Runtime owns the notification list and its poller. One poller exists per
// session identity; epoch bumps on every teardown make in-flight responses
// from an earlier session unable to mutate state.
type Runtime struct {
	client   feedClient
	log      logging.Logger
	clock    clockwork.Clock
	interval time.Duration

	mu     sync.Mutex
	list   []*models.Notification
	userID string
	epoch  uint64
	stop   chan struct{}

	// Fetch sequencing: responses are applied last-write-wins, but a
	// response older than the newest applied one is discarded so a slow
	// stale fetch cannot regress a fresher list.
	fetchSeq   uint64
	appliedSeq uint64
}

// NewRuntime builds a runtime. interval <= 0 falls back to DefaultInterval.
func NewRuntime(client feedClient, clock clockwork.Clock, interval time.Duration, log logging.Logger) *Runtime {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Runtime{
		client:   client,
		clock:    clock,
		interval: interval,
		log:      log,
	}
}

// HandleSessionChange is registered with session.Manager.OnChange. A nil
// session tears the poller down; a new identity tears down the old poller
// before the new one starts, so tickers never overlap or leak across swaps.
// A change carrying the same identity (e.g. an identity refresh) keeps the
// running poller.
func (r *Runtime) HandleSessionChange(s *session.Session) {
	newID := ""
	if s != nil && s.User != nil {
		newID = s.User.ID
	}

	r.mu.Lock()
	if newID != "" && newID == r.userID {
		r.mu.Unlock()
		return
	}

	r.teardownLocked()
	if newID == "" {
		r.mu.Unlock()
		return
	}

	r.userID = newID
	r.epoch++
	epoch := r.epoch
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	r.log.Info(context.Background(), "notification polling started", "user_id", newID, "interval", r.interval)
	go r.poll(epoch, stop)
}

// Close tears the poller down and drops the list. Safe to call repeatedly.
func (r *Runtime) Close() {
	r.mu.Lock()
	r.teardownLocked()
	r.mu.Unlock()
}

// teardownLocked stops the active poller (if any) and clears all feed state.
func (r *Runtime) teardownLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.userID = ""
	r.epoch++
	r.list = nil
}

func (r *Runtime) poll(epoch uint64, stop <-chan struct{}) {
	ctx := context.Background()
	_ = r.fetch(ctx, epoch)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			_ = r.fetch(ctx, epoch)
		case <-stop:
			return
		}
	}
}

// Refresh fetches the feed outside the polling schedule. Without an active
// session it is a no-op. Overlap with a poller tick is allowed; resolution
// order decides which response lands, subject to the staleness check.
func (r *Runtime) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.stop == nil {
		r.mu.Unlock()
		return nil
	}
	epoch := r.epoch
	r.mu.Unlock()

	return r.fetch(ctx, epoch)
}

// fetch replaces the list with one backend response. The response is dropped
// when the runtime was torn down mid-flight (epoch moved) or when a newer
// response was already applied (sequence check).
func (r *Runtime) fetch(ctx context.Context, epoch uint64) error {
	r.mu.Lock()
	if r.epoch != epoch {
		r.mu.Unlock()
		return nil
	}
	r.fetchSeq++
	seq := r.fetchSeq
	r.mu.Unlock()

	list, err := r.client.ListNotifications(ctx)
	if err != nil {
		r.log.Warn(ctx, "notification fetch failed", "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epoch != epoch {
		return nil
	}
	if seq < r.appliedSeq {
		r.log.Debug(ctx, "discarding stale notification response", "seq", seq, "applied", r.appliedSeq)
		return nil
	}
	r.appliedSeq = seq
	r.list = list
	return nil
}

// Notifications returns a snapshot of the feed in backend order.
func (r *Runtime) Notifications() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, 0, len(r.list))
	for _, n := range r.list {
		out = append(out, *n)
	}
	return out
}

// UnreadCount is recomputed from the list on every call; it is never tracked
// incrementally, so it cannot drift.
func (r *Runtime) UnreadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.list {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAsRead flips a notification to read locally and acknowledges it on the
// backend. The local flip is not rolled back on backend failure; read-state
// divergence is cheap and reconciles on the next poll. Unknown or already
// read ids are no-ops.
func (r *Runtime) MarkAsRead(ctx context.Context, id string) {
	r.mu.Lock()
	var target *models.Notification
	for _, n := range r.list {
		if n.ID == id {
			target = n
			break
		}
	}
	if target == nil || target.Read {
		r.mu.Unlock()
		return
	}
	target.Read = true
	r.mu.Unlock()

	if err := r.client.MarkNotificationRead(ctx, id); err != nil {
		r.log.Warn(ctx, "failed to acknowledge notification read", "id", id, "error", err)
	}
}

// MarkAllAsRead flips the whole list to read locally, then acknowledges every
// previously-unread notification concurrently, with no ordering guarantee and
// no aggregate rollback. A partial-failure mix self-heals on the next fetch.
func (r *Runtime) MarkAllAsRead(ctx context.Context) {
	r.mu.Lock()
	var unread []string
	for _, n := range r.list {
		if !n.Read {
			unread = append(unread, n.ID)
			n.Read = true
		}
	}
	r.mu.Unlock()

	for _, id := range unread {
		go func(id string) {
			if err := r.client.MarkNotificationRead(ctx, id); err != nil {
				r.log.Warn(ctx, "failed to acknowledge notification read", "id", id, "error", err)
			}
		}(id)
	}
}
