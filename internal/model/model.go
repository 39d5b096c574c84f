// Package model defines domain entities shared by the API client, the
// session layer and the dashboard synchronizer. JSON tags follow the
// AcademicFlow backend contract, which speaks Spanish on the wire.
package model

import (
	"strings"
	"time"
)

// Priority levels as the backend encodes them.
const (
	PriorityLow    = "baja"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
)

// Weekdays recognized by the schedule endpoints, in display order.
var Weekdays = []string{"LUNES", "MARTES", "MIERCOLES", "JUEVES", "VIERNES", "SABADO", "DOMINGO"}

// Severity classifies alerts and floating notifications.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// User is the authenticated account as returned by /usuarios/{id}.
type User struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
	Apellidos string `json:"apellidos,omitempty"`
}

// FullName joins first and last names, tolerating a missing surname.
func (u User) FullName() string {
	return strings.TrimSpace(u.Nombre + " " + u.Apellidos)
}

// Session is the authenticated identity held between invocations.
// It is valid only when Token is non-empty and User.ID is set; any other
// persisted shape is treated as no session at all.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"usuario"`
	StartedAt time.Time `json:"sessionStart"`
}

// Valid reports whether the session satisfies the presence invariant.
func (s Session) Valid() bool {
	return s.Token != "" && s.User.ID != 0
}

// Task is a single planner item.
type Task struct {
	ID          int64     `json:"id"`
	Titulo      string    `json:"titulo"`
	Descripcion string    `json:"descripcion"`
	FechaLimite time.Time `json:"fechaLimite"`
	Prioridad   string    `json:"prioridad"`
	Completada  bool      `json:"completada"`
	Horario     *EntryRef `json:"horario,omitempty"`
	Usuario     *UserRef  `json:"usuario,omitempty"`
}

// EntryRef is an id-only schedule reference embedded in task payloads.
type EntryRef struct {
	ID int64 `json:"id"`
}

// UserRef is an id-only user reference embedded in task payloads.
type UserRef struct {
	ID int64 `json:"id"`
}

// ScheduleEntry is one weekly recurring activity block.
// Invariant: HoraInicio < HoraFin lexicographically (zero-padded 24h).
type ScheduleEntry struct {
	ID         int64  `json:"id"`
	Actividad  string `json:"actividad"`
	Dia        string `json:"dia"`
	HoraInicio string `json:"horaInicio"`
	HoraFin    string `json:"horaFin"`
}

// Alert is a derived warning shown on the dashboard. The whole alert list
// is regenerated from the task collection on every mutation; alerts are
// never patched in place.
type Alert struct {
	ID      string   `json:"id"`
	Titulo  string   `json:"titulo"`
	Mensaje string   `json:"mensaje"`
	Tipo    Severity `json:"tipo"`
	Fecha   string   `json:"fecha"`
	Leida   bool     `json:"leida"`
	Icono   string   `json:"icono"`
}

// Notification is a short-lived floating toast, distinct from alerts.
type Notification struct {
	ID      string   `json:"id"`
	Tipo    Severity `json:"tipo"`
	Titulo  string   `json:"titulo"`
	Mensaje string   `json:"mensaje"`
	Icono   string   `json:"icono"`
	Visible bool     `json:"visible"`
}

// Stats are derived from the task collection and never stored on their own.
type Stats struct {
	Total       int `json:"totalTareas"`
	Completadas int `json:"tareasCompletadas"`
	Pendientes  int `json:"tareasPendientes"`
	Porcentaje  int `json:"porcentajeAvance"`
}

// DashboardData is the aggregate payload of GET /dashboard/{id}.
type DashboardData struct {
	Tareas            []Task          `json:"tareas"`
	Horarios          []ScheduleEntry `json:"horarios"`
	TotalTareas       int             `json:"totalTareas"`
	TareasCompletadas int             `json:"tareasCompletadas"`
	PorcentajeAvance  int             `json:"porcentajeAvance"`
}

// TaskDraft is the client-side shape for creating a task. The server
// assigns the id; the due date is normalized to an absolute instant
// before transmission.
type TaskDraft struct {
	Titulo      string `json:"titulo" validate:"required"`
	Descripcion string `json:"descripcion"`
	FechaLimite string `json:"fechaLimite"`
	Prioridad   string `json:"prioridad"`
	HorarioID   *int64 `json:"horarioId,omitempty"`
}

// ScheduleDraft is the client-side shape for creating a schedule entry.
type ScheduleDraft struct {
	Actividad  string `json:"actividad" validate:"required"`
	Dia        string `json:"dia"`
	HoraInicio string `json:"horaInicio"`
	HoraFin    string `json:"horaFin"`
}
