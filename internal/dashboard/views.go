package dashboard

import (
	"sort"
	"time"

	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/timefmt"
)

// Task filter values.
const (
	FilterAll       = "todas"
	FilterPending   = "pendientes"
	FilterCompleted = "completadas"
)

var dayNames = map[string]string{
	"LUNES":     "Lunes",
	"MARTES":    "Martes",
	"MIERCOLES": "Miércoles",
	"JUEVES":    "Jueves",
	"VIERNES":   "Viernes",
	"SABADO":    "Sábado",
	"DOMINGO":   "Domingo",
}

// User returns the current profile.
func (s *Synchronizer) User() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Tasks returns a snapshot of the task collection, most recent first.
func (s *Synchronizer) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Schedule returns a snapshot of the schedule collection in insertion order.
func (s *Synchronizer) Schedule() []model.ScheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ScheduleEntry, len(s.schedule))
	copy(out, s.schedule)
	return out
}

// Alerts returns the current alert list, newest first.
func (s *Synchronizer) Alerts() []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Alert, len(s.alertList))
	copy(out, s.alertList)
	return out
}

// Stats returns the derived task statistics.
func (s *Synchronizer) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// AlertCounters returns the severity summaries (critical, informational).
func (s *Synchronizer) AlertCounters() (critical, info int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.critical, s.infoCount
}

// Online reports whether the last aggregate load reached the backend.
func (s *Synchronizer) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// SystemStatus is the human label for the connectivity indicator.
func (s *Synchronizer) SystemStatus() string {
	if s.Online() {
		return "Conectado"
	}
	return "Desconectado"
}

// FilteredTasks applies the estado/prioridad filters and sorts pending
// tasks first, then by due date ascending.
func (s *Synchronizer) FilteredTasks(estado, prioridad string) []model.Task {
	out := s.Tasks()

	filtered := out[:0]
	for _, t := range out {
		switch estado {
		case FilterPending:
			if t.Completada {
				continue
			}
		case FilterCompleted:
			if !t.Completada {
				continue
			}
		}
		if prioridad != "" && prioridad != FilterAll && t.Prioridad != prioridad {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Completada != filtered[j].Completada {
			return !filtered[i].Completada
		}
		return filtered[i].FechaLimite.Before(filtered[j].FechaLimite)
	})
	return filtered
}

// ScheduleByDay groups entries by weekday, each day sorted by start time.
// Every weekday is present, possibly empty.
func (s *Synchronizer) ScheduleByDay() map[string][]model.ScheduleEntry {
	entries := s.Schedule()
	grouped := make(map[string][]model.ScheduleEntry, len(model.Weekdays))
	for _, day := range model.Weekdays {
		grouped[day] = []model.ScheduleEntry{}
	}
	for _, e := range entries {
		grouped[e.Dia] = append(grouped[e.Dia], e)
	}
	for day := range grouped {
		sort.Slice(grouped[day], func(i, j int) bool {
			return grouped[day][i].HoraInicio < grouped[day][j].HoraInicio
		})
	}
	return grouped
}

// BusiestDay names the weekday with the most schedule entries.
func (s *Synchronizer) BusiestDay() string {
	entries := s.Schedule()
	if len(entries) == 0 {
		return "Sin horarios"
	}
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Dia]++
	}
	best := ""
	for _, day := range model.Weekdays {
		if best == "" || counts[day] > counts[best] {
			best = day
		}
	}
	return DayName(best)
}

// TotalScheduledHours sums whole scheduled hours across the week.
func (s *Synchronizer) TotalScheduledHours() int {
	total := 0
	for _, e := range s.Schedule() {
		from, err1 := timefmt.Minutes(e.HoraInicio)
		to, err2 := timefmt.Minutes(e.HoraFin)
		if err1 != nil || err2 != nil {
			continue
		}
		total += to/60 - from/60
	}
	return total
}

// WeeklyCompletionAverage is the mean number of tasks completed per day
// over the trailing week, rounded to one decimal.
func (s *Synchronizer) WeeklyCompletionAverage() float64 {
	now := s.now()
	recent := 0
	for _, t := range s.Tasks() {
		if !t.Completada {
			continue
		}
		if age := now.Sub(t.FechaLimite); age >= 0 && age <= 7*24*time.Hour {
			recent++
		}
	}
	return float64(int(float64(recent)/7*10+0.5)) / 10
}

// DayName maps the wire weekday onto its display form.
func DayName(dia string) string {
	if name, ok := dayNames[dia]; ok {
		return name
	}
	return dia
}
