package dashboard

import (
	"testing"
	"time"

	"github.com/00Flaptzy/academicflow/internal/model"
)

func seedViews(t *testing.T, now time.Time) *Synchronizer {
	t.Helper()
	s, _, _ := newSync(t, &fakeBackend{}, WithClock(func() time.Time { return now }))
	s.mu.Lock()
	s.tasks = []model.Task{
		{ID: 1, Titulo: "p-alta", FechaLimite: now.Add(3 * time.Hour), Prioridad: model.PriorityHigh},
		{ID: 2, Titulo: "hecha", FechaLimite: now.Add(-24 * time.Hour), Prioridad: model.PriorityLow, Completada: true},
		{ID: 3, Titulo: "p-baja", FechaLimite: now.Add(time.Hour), Prioridad: model.PriorityLow},
	}
	s.schedule = []model.ScheduleEntry{
		{ID: 1, Actividad: "Cálculo", Dia: "LUNES", HoraInicio: "10:00", HoraFin: "12:00"},
		{ID: 2, Actividad: "Física", Dia: "LUNES", HoraInicio: "08:00", HoraFin: "09:30"},
		{ID: 3, Actividad: "Inglés", Dia: "MIERCOLES", HoraInicio: "16:00", HoraFin: "18:00"},
	}
	s.mu.Unlock()
	return s
}

func TestFilteredTasks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := seedViews(t, now)

	all := s.FilteredTasks(FilterAll, FilterAll)
	if len(all) != 3 {
		t.Fatalf("all = %d", len(all))
	}
	// pending first, then due date ascending; completed last
	if all[0].ID != 3 || all[1].ID != 1 || all[2].ID != 2 {
		t.Fatalf("order = %v %v %v", all[0].ID, all[1].ID, all[2].ID)
	}

	pending := s.FilteredTasks(FilterPending, FilterAll)
	if len(pending) != 2 {
		t.Fatalf("pending = %d", len(pending))
	}

	high := s.FilteredTasks(FilterAll, model.PriorityHigh)
	if len(high) != 1 || high[0].ID != 1 {
		t.Fatalf("high = %+v", high)
	}

	done := s.FilteredTasks(FilterCompleted, FilterAll)
	if len(done) != 1 || done[0].ID != 2 {
		t.Fatalf("done = %+v", done)
	}
}

func TestScheduleByDay(t *testing.T) {
	t.Parallel()

	s := seedViews(t, time.Now())
	byDay := s.ScheduleByDay()

	if len(byDay) != 7 {
		t.Fatalf("every weekday must be present, got %d", len(byDay))
	}
	lunes := byDay["LUNES"]
	if len(lunes) != 2 || lunes[0].Actividad != "Física" || lunes[1].Actividad != "Cálculo" {
		t.Fatalf("monday must be sorted by start time: %+v", lunes)
	}
	if len(byDay["DOMINGO"]) != 0 {
		t.Fatalf("empty days stay empty")
	}
}

func TestBusiestDayAndHours(t *testing.T) {
	t.Parallel()

	s := seedViews(t, time.Now())
	if got := s.BusiestDay(); got != "Lunes" {
		t.Fatalf("busiest = %q", got)
	}
	// whole-hour accounting: 12-10 + 9-8 + 18-16
	if got := s.TotalScheduledHours(); got != 5 {
		t.Fatalf("hours = %d", got)
	}

	empty, _, _ := newSync(t, &fakeBackend{})
	if got := empty.BusiestDay(); got != "Sin horarios" {
		t.Fatalf("empty busiest = %q", got)
	}
}

func TestWeeklyCompletionAverage(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s, _, _ := newSync(t, &fakeBackend{}, WithClock(func() time.Time { return now }))
	s.mu.Lock()
	s.tasks = []model.Task{
		{Completada: true, FechaLimite: now.Add(-24 * time.Hour)},
		{Completada: true, FechaLimite: now.Add(-48 * time.Hour)},
		{Completada: true, FechaLimite: now.Add(-14 * 24 * time.Hour)}, // too old
		{Completada: false, FechaLimite: now.Add(-24 * time.Hour)},    // pending
	}
	s.mu.Unlock()

	if got := s.WeeklyCompletionAverage(); got != 0.3 {
		t.Fatalf("average = %v, want 0.3", got)
	}
}

func TestDayName(t *testing.T) {
	t.Parallel()

	if DayName("MIERCOLES") != "Miércoles" {
		t.Fatalf("accent mapping broken")
	}
	if DayName("???") != "???" {
		t.Fatalf("unknown days pass through")
	}
}
