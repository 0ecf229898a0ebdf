// Package toast holds the queue of transient feedback messages.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long a toast stays visible unless dismissed earlier.
const DefaultTTL = 5 * time.Second

// Kind selects the visual treatment of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// valid reports whether k is one of the known kinds.
func (k Kind) valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning:
		return true
	}
	return false
}

// Toast is one queued message. ID is assigned by the queue and is the handle
// for dismissal.
type Toast struct {
	ID        string
	Title     string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Queue shows toasts in insertion order and auto-dismisses each one after a
// fixed TTL. Dismissal by id is idempotent: the auto-expiry firing after a
// manual dismiss (or vice versa) is a no-op.
type Queue struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu     sync.Mutex
	toasts []*Toast
	timers map[string]clockwork.Timer
}

// NewQueue builds a queue. ttl <= 0 falls back to DefaultTTL.
func NewQueue(clock clockwork.Clock, ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		clock:  clock,
		ttl:    ttl,
		timers: make(map[string]clockwork.Timer),
	}
}

// Show enqueues a toast and returns its id. An unknown kind falls back to
// KindSuccess.
func (q *Queue) Show(title, message string, kind Kind) string {
	if !kind.valid() {
		kind = KindSuccess
	}

	id := uuid.NewString()
	t := &Toast{
		ID:        id,
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: q.clock.Now(),
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, t)
	q.timers[id] = q.clock.AfterFunc(q.ttl, func() { q.Dismiss(id) })
	q.mu.Unlock()

	return id
}

// Success is shorthand for Show with KindSuccess.
func (q *Queue) Success(title, message string) string {
	return q.Show(title, message, KindSuccess)
}

// Error is shorthand for Show with KindError.
func (q *Queue) Error(title, message string) string {
	return q.Show(title, message, KindError)
}

// Dismiss removes a toast and cancels its expiry timer. Unknown or already
// dismissed ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	timer, ok := q.timers[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(q.timers, id)

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			break
		}
	}
}

// Toasts returns the visible toasts in insertion order.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, 0, len(q.toasts))
	for _, t := range q.toasts {
		out = append(out, *t)
	}
	return out
}

// Remaining reports how much display time a toast has left. ok is false for
// unknown or already dismissed ids.
func (q *Queue) Remaining(id string) (d time.Duration, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, t := range q.toasts {
		if t.ID != id {
			continue
		}
		d = t.CreatedAt.Add(q.ttl).Sub(q.clock.Now())
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// Close dismisses everything and stops all timers.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
}
