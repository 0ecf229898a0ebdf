package toast

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock, DefaultTTL)
	t.Cleanup(q.Close)
	return q, clock
}

func TestShow_AssignsUniqueIDs(t *testing.T) {
	q, _ := newTestQueue(t)

	id1 := q.Success("saved", "profile updated")
	id2 := q.Error("failed", "could not reach the server")

	require.NotEqual(t, id1, id2)
	_, err := uuid.Parse(id1)
	assert.NoError(t, err)
}

func TestToasts_InsertionOrder(t *testing.T) {
	q, _ := newTestQueue(t)

	first := q.Show("one", "", KindInfo)
	second := q.Show("two", "", KindWarning)
	third := q.Show("three", "", KindSuccess)

	got := q.Toasts()
	require.Len(t, got, 3)
	assert.Equal(t, []string{first, second, third}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestShow_UnknownKindFallsBackToSuccess(t *testing.T) {
	q, _ := newTestQueue(t)

	id := q.Show("hello", "", Kind("sparkly"))

	got := q.Toasts()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, KindSuccess, got[0].Kind)
}

func TestAutoExpiry(t *testing.T) {
	q, clock := newTestQueue(t)

	q.Success("saved", "")
	require.Len(t, q.Toasts(), 1)

	clock.Advance(DefaultTTL - time.Millisecond)
	assert.Len(t, q.Toasts(), 1, "still visible just before the deadline")

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return len(q.Toasts()) == 0 },
		time.Second, time.Millisecond)
}

func TestAutoExpiry_PerToastDeadlines(t *testing.T) {
	q, clock := newTestQueue(t)

	q.Success("early", "")
	clock.Advance(2 * time.Second)
	late := q.Success("late", "")

	clock.Advance(3 * time.Second)

	require.Eventually(t, func() bool { return len(q.Toasts()) == 1 },
		time.Second, time.Millisecond, "only the older toast expired")
	assert.Equal(t, late, q.Toasts()[0].ID)
}

func TestDismiss_CancelsExpiry(t *testing.T) {
	q, clock := newTestQueue(t)

	id := q.Success("saved", "")
	q.Dismiss(id)
	assert.Empty(t, q.Toasts())

	// The stopped timer firing point passes without effect.
	clock.Advance(2 * DefaultTTL)
	assert.Empty(t, q.Toasts())
}

func TestDismiss_Idempotent(t *testing.T) {
	q, clock := newTestQueue(t)

	keep := q.Success("keep", "")
	id := q.Success("gone", "")

	q.Dismiss(id)
	q.Dismiss(id)
	q.Dismiss("no-such-id")

	clock.Advance(time.Second)
	q.Dismiss(id) // after its original deadline region too

	got := q.Toasts()
	require.Len(t, got, 1)
	assert.Equal(t, keep, got[0].ID)
}

func TestRemaining_ShrinksWithTime(t *testing.T) {
	q, clock := newTestQueue(t)

	id := q.Success("saved", "")

	d, ok := q.Remaining(id)
	require.True(t, ok)
	assert.Equal(t, DefaultTTL, d)

	clock.Advance(2 * time.Second)
	d, ok = q.Remaining(id)
	require.True(t, ok)
	assert.Equal(t, DefaultTTL-2*time.Second, d)

	clock.Advance(DefaultTTL)
	require.Eventually(t, func() bool {
		_, ok := q.Remaining(id)
		return !ok
	}, time.Second, time.Millisecond, "expired toasts report no remaining time")
}

func TestClose_DropsEverything(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock, DefaultTTL)

	q.Success("one", "")
	q.Error("two", "")

	q.Close()
	assert.Empty(t, q.Toasts())

	clock.Advance(2 * DefaultTTL)
	assert.Empty(t, q.Toasts())
}

func TestNewQueue_DefaultTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock, 0)
	t.Cleanup(q.Close)

	id := q.Success("saved", "")
	d, ok := q.Remaining(id)
	require.True(t, ok)
	assert.Equal(t, DefaultTTL, d)
}
