// Package notify implements the transient toast queue: capacity-bounded,
// self-expiring, and independent of the dashboard alert list.
package notify

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/00Flaptzy/academicflow/internal/model"
)

const (
	// maxVisible bounds the queue; pushing beyond it evicts the oldest entry.
	maxVisible = 5
	// autoDismiss is the time a toast stays on screen before fading.
	autoDismiss = 5 * time.Second
	// removeDelay is the fade-out grace before the entry is dropped.
	removeDelay = 300 * time.Millisecond
)

// Queue holds the floating notifications currently on screen. Timer
// callbacks fire on their own goroutines, so access is synchronized.
type Queue struct {
	mu    sync.Mutex
	items []model.Notification
	after func(time.Duration, func())
}

// Option customizes a Queue.
type Option func(*Queue)

// WithAfter replaces the timer used for auto-dismissal; tests use it to
// fire expirations deterministically.
func WithAfter(after func(time.Duration, func())) Option {
	return func(q *Queue) { q.after = after }
}

// New constructs an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Push inserts a toast at the front, schedules its auto-dismissal and
// evicts the oldest entry when the cap is exceeded. It returns the new id.
func (q *Queue) Push(tipo model.Severity, titulo, mensaje string) string {
	id := newID()
	n := model.Notification{
		ID:      id,
		Tipo:    tipo,
		Titulo:  titulo,
		Mensaje: mensaje,
		Icono:   iconFor(tipo),
		Visible: true,
	}

	q.mu.Lock()
	q.items = append([]model.Notification{n}, q.items...)
	if len(q.items) > maxVisible {
		q.items = q.items[:maxVisible]
	}
	q.mu.Unlock()

	q.after(autoDismiss, func() { q.Dismiss(id) })
	return id
}

// Dismiss hides the toast immediately and removes it after the fade-out
// delay. Dismissing an unknown id is a no-op; concurrent dismissals of
// different ids do not interfere.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	found := false
	for i := range q.items {
		if q.items[i].ID == id {
			q.items[i].Visible = false
			found = true
			break
		}
	}
	q.mu.Unlock()

	if !found {
		return
	}
	q.after(removeDelay, func() { q.remove(id) })
}

func (q *Queue) remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, n := range q.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// Items returns a snapshot of the queue, newest first.
func (q *Queue) Items() []model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.Notification, len(q.items))
	copy(out, q.items)
	return out
}

func iconFor(tipo model.Severity) string {
	switch tipo {
	case model.SeveritySuccess:
		return "check_circle"
	case model.SeverityError:
		return "error"
	case model.SeverityWarning:
		return "warning"
	case model.SeverityInfo:
		return "info"
	default:
		return "notifications"
	}
}

func newID() string {
	id, _ := uuid.NewV4()
	return id.String()
}
