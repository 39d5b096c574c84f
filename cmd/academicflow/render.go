package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/00Flaptzy/academicflow/internal/dashboard"
	"github.com/00Flaptzy/academicflow/internal/grid"
	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/notify"
	"github.com/00Flaptzy/academicflow/internal/timefmt"
)

var severityMark = map[model.Severity]string{
	model.SeverityError:   "!!",
	model.SeverityWarning: " !",
	model.SeverityInfo:    " i",
	model.SeveritySuccess: "ok",
}

func printTasks(tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Println("No hay tareas.")
		return
	}
	now := time.Now()
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completada {
			mark = "[x]"
		}
		fmt.Printf("%s #%-4d %-40s %-6s vence: %s\n",
			mark, t.ID, truncate(t.Titulo, 40), t.Prioridad,
			timefmt.RelativeDate(t.FechaLimite.Local(), now))
		if t.Descripcion != "" {
			fmt.Printf("          %s\n", truncate(t.Descripcion, 60))
		}
	}
}

// printSchedule draws the weekly grid day by day. The vertical offset and
// height columns mirror the visual layout the web dashboard renders.
func printSchedule(s *dashboard.Synchronizer) {
	byDay := s.ScheduleByDay()
	for _, day := range model.Weekdays {
		entries := byDay[day]
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("%s:\n", dashboard.DayName(day))
		for _, e := range entries {
			offset, err1 := grid.VerticalOffset(e.HoraInicio)
			height, err2 := grid.Height(e.HoraInicio, e.HoraFin)
			pos := ""
			if err1 == nil && err2 == nil {
				pos = fmt.Sprintf(" y=%.0fpx h=%.0fpx", offset, height)
			}
			fmt.Printf("  #%-4d %s-%s (%s) %s%s\n",
				e.ID, e.HoraInicio, e.HoraFin,
				timefmt.DurationLabel(e.HoraInicio, e.HoraFin), e.Actividad, pos)
		}
	}
}

func renderDashboard(s *dashboard.Synchronizer, queue *notify.Queue, start, now time.Time) {
	// Clear and repaint the whole frame on every tick.
	fmt.Print("\033[H\033[2J")

	user := s.User()
	fmt.Printf("AcademicFlow — %s · %s · %s\n", user.FullName(), s.SystemStatus(), timefmt.ClockTime(now))
	fmt.Printf("%s · sesión activa %s\n", timefmt.LongDate(now), timefmt.Elapsed(start, now))
	fmt.Println(strings.Repeat("-", 72))

	st := s.Stats()
	fmt.Printf("Tareas: %d total, %d completadas, %d pendientes (%d%%)\n",
		st.Total, st.Completadas, st.Pendientes, st.Porcentaje)
	fmt.Printf("Promedio semanal: %.1f/día · Día más ocupado: %s · Horas semanales: %d\n",
		s.WeeklyCompletionAverage(), s.BusiestDay(), s.TotalScheduledHours())

	critical, info := s.AlertCounters()
	alerts := s.Alerts()
	if len(alerts) > 0 {
		fmt.Printf("\nAlertas (%d críticas, %d informativas):\n", critical, info)
		for _, a := range alerts {
			fmt.Printf("  %s %s — %s (%s)\n", severityMark[a.Tipo], a.Titulo, a.Mensaje, a.Fecha)
		}
	}

	pending := s.FilteredTasks(dashboard.FilterPending, dashboard.FilterAll)
	if len(pending) > 0 {
		fmt.Println("\nPróximas tareas:")
		limit := len(pending)
		if limit > 5 {
			limit = 5
		}
		for _, t := range pending[:limit] {
			fmt.Printf("  #%-4d %-40s %s\n", t.ID, truncate(t.Titulo, 40),
				timefmt.RelativeDate(t.FechaLimite.Local(), now))
		}
	}

	if toasts := queue.Items(); len(toasts) > 0 {
		fmt.Println()
		for _, n := range toasts {
			if !n.Visible {
				continue
			}
			fmt.Printf("  [%s] %s: %s\n", n.Tipo, n.Titulo, n.Mensaje)
		}
	}

	fmt.Println("\nCtrl+C para salir.")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
