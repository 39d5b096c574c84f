// Package alerts derives dashboard alerts from the task collection. The
// list is rebuilt from scratch on every invocation; incremental diffing is
// deliberately avoided since a single user's task count keeps it cheap.
package alerts

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/timefmt"
)

// maxAlerts bounds the regenerated list; the oldest entries are evicted.
const maxAlerts = 10

const dueSoonWindow = 24 * time.Hour

// Generate evaluates the alert rules in fixed order against the task
// collection and the current wall clock. Each rule contributes at most one
// aggregate alert; later rules are prepended so they rank above earlier
// ones. pending and userName feed the always-present system greeting.
func Generate(tasks []model.Task, now time.Time, pending int, userName string) []model.Alert {
	var out []model.Alert

	push := func(tipo model.Severity, icono, titulo, mensaje string) {
		a := model.Alert{
			ID:      newID(),
			Titulo:  titulo,
			Mensaje: mensaje,
			Tipo:    tipo,
			Fecha:   timefmt.ShortClock(now),
			Leida:   false,
			Icono:   icono,
		}
		out = append([]model.Alert{a}, out...)
		if len(out) > maxAlerts {
			out = out[:maxAlerts]
		}
	}

	if n := countDueSoon(tasks, now); n > 0 {
		push(model.SeverityWarning, "alert",
			"Tareas próximas a vencer",
			fmt.Sprintf("Tienes %d tarea(s) que vencen en las próximas 24 horas", n))
	}

	if n := countHighPriority(tasks); n > 0 {
		push(model.SeverityWarning, "priority_high",
			"Tareas de alta prioridad",
			fmt.Sprintf("Tienes %d tarea(s) de alta prioridad pendientes", n))
	}

	if n := countOverdue(tasks, now); n > 0 {
		push(model.SeverityError, "error",
			"Tareas vencidas",
			fmt.Sprintf("Tienes %d tarea(s) vencidas", n))
	}

	push(model.SeverityInfo, "info",
		"Sistema activo",
		fmt.Sprintf("Bienvenido %s, tienes %d tareas pendientes", userName, pending))

	return out
}

// Counters returns the severity summaries shown next to the alert list:
// critical covers warning+error, info covers info+success.
func Counters(alerts []model.Alert) (critical, info int) {
	for _, a := range alerts {
		switch a.Tipo {
		case model.SeverityWarning, model.SeverityError:
			critical++
		case model.SeverityInfo, model.SeveritySuccess:
			info++
		}
	}
	return critical, info
}

func countDueSoon(tasks []model.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Completada {
			continue
		}
		left := t.FechaLimite.Sub(now)
		if left > 0 && left <= dueSoonWindow {
			n++
		}
	}
	return n
}

func countHighPriority(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completada && t.Prioridad == model.PriorityHigh {
			n++
		}
	}
	return n
}

func countOverdue(tasks []model.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if !t.Completada && t.FechaLimite.Before(now) {
			n++
		}
	}
	return n
}

func newID() string {
	id, _ := uuid.NewV4()
	return id.String()
}
