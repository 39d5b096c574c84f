package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/00Flaptzy/academicflow/internal/model"
)

// manualTimer collects scheduled callbacks so tests fire them on demand.
type manualTimer struct {
	scheduled []struct {
		d time.Duration
		f func()
	}
}

func (m *manualTimer) after(d time.Duration, f func()) {
	m.scheduled = append(m.scheduled, struct {
		d time.Duration
		f func()
	}{d, f})
}

// fire runs and drops the first pending callback matching d.
func (m *manualTimer) fire(d time.Duration) bool {
	for i, s := range m.scheduled {
		if s.d == d {
			m.scheduled = append(m.scheduled[:i], m.scheduled[i+1:]...)
			s.f()
			return true
		}
	}
	return false
}

func TestPush_IconAndOrdering(t *testing.T) {
	t.Parallel()

	tm := &manualTimer{}
	q := New(WithAfter(tm.after))

	q.Push(model.SeverityError, "Error", "fallo")
	q.Push(model.SeveritySuccess, "Hecho", "ok")

	items := q.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Titulo != "Hecho" || items[0].Icono != "check_circle" {
		t.Fatalf("newest first expected, got %+v", items[0])
	}
	if items[1].Icono != "error" {
		t.Fatalf("error icon expected, got %+v", items[1])
	}
	if !items[0].Visible {
		t.Fatalf("pushed toast should be visible")
	}
}

func TestPush_EvictsOldestBeyondCap(t *testing.T) {
	t.Parallel()

	tm := &manualTimer{}
	q := New(WithAfter(tm.after))

	var first string
	for i := 0; i < 6; i++ {
		id := q.Push(model.SeverityInfo, fmt.Sprintf("n%d", i), "m")
		if i == 0 {
			first = id
		}
	}

	items := q.Items()
	if len(items) != 5 {
		t.Fatalf("len = %d, want 5", len(items))
	}
	for _, n := range items {
		if n.ID == first {
			t.Fatalf("oldest entry should have been evicted")
		}
	}
	if items[0].Titulo != "n5" {
		t.Fatalf("newest = %q, want n5", items[0].Titulo)
	}
}

func TestDismiss_TwoPhase(t *testing.T) {
	t.Parallel()

	tm := &manualTimer{}
	q := New(WithAfter(tm.after))

	id := q.Push(model.SeverityInfo, "n", "m")
	q.Dismiss(id)

	items := q.Items()
	if len(items) != 1 || items[0].Visible {
		t.Fatalf("dismissed toast should remain hidden until removal, got %+v", items)
	}

	if !tm.fire(300 * time.Millisecond) {
		t.Fatalf("removal callback not scheduled")
	}
	if got := q.Items(); len(got) != 0 {
		t.Fatalf("toast should be removed after fade, got %+v", got)
	}
}

func TestDismiss_UnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	tm := &manualTimer{}
	q := New(WithAfter(tm.after))
	q.Push(model.SeverityInfo, "n", "m")

	q.Dismiss("missing")
	if len(q.Items()) != 1 {
		t.Fatalf("queue should be untouched")
	}
	// no removal timer may be scheduled for the unknown id
	if tm.fire(300 * time.Millisecond) {
		t.Fatalf("unexpected removal scheduled")
	}
}

func TestAutoDismissAfterDelay(t *testing.T) {
	t.Parallel()

	tm := &manualTimer{}
	q := New(WithAfter(tm.after))
	q.Push(model.SeverityWarning, "n", "m")

	if !tm.fire(5 * time.Second) {
		t.Fatalf("auto-dismiss not scheduled")
	}
	items := q.Items()
	if len(items) != 1 || items[0].Visible {
		t.Fatalf("toast should be fading after auto-dismiss, got %+v", items)
	}
	if !tm.fire(300 * time.Millisecond) {
		t.Fatalf("fade removal not scheduled")
	}
	if len(q.Items()) != 0 {
		t.Fatalf("toast should be gone")
	}
}
