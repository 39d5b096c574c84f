// Package dashboard reconciles server-fetched collections with local
// mutations and keeps the derived statistics, alerts and notifications
// consistent after every change.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/00Flaptzy/academicflow/internal/alerts"
	"github.com/00Flaptzy/academicflow/internal/api"
	"github.com/00Flaptzy/academicflow/internal/errs"
	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/session"
)

// Backend is the slice of the REST client the synchronizer needs.
type Backend interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetDashboard(ctx context.Context, userID int64) (model.DashboardData, error)
	ListTasks(ctx context.Context, userID int64) ([]model.Task, error)
	ListSchedule(ctx context.Context, userID int64) ([]model.ScheduleEntry, error)
	CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	CompleteTask(ctx context.Context, id int64) error
	CreateScheduleEntry(ctx context.Context, draft model.ScheduleDraft) (model.ScheduleEntry, error)
	UpdateScheduleEntry(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error)
	DeleteScheduleEntry(ctx context.Context, id int64) error
}

// Notifier receives one toast per mutation outcome.
type Notifier interface {
	Push(tipo model.Severity, titulo, mensaje string) string
}

// TaskInput is the user-entered task form. DueLocal is the datetime-local
// string ("2006-01-02T15:04"); it is normalized to an absolute instant
// before transmission.
type TaskInput struct {
	Titulo      string
	Descripcion string
	DueLocal    string
	Prioridad   string
	HorarioID   *int64
}

// Synchronizer orchestrates all remote CRUD against the backend and owns
// the local task/schedule collections. The original engine ran on a single
// cooperative thread; here refresh ticks and toast timers are real
// goroutines, so a mutex serializes collection access. Only the aggregate
// dashboard load carries an in-flight guard; individual mutations may still
// interleave, last response wins.
type Synchronizer struct {
	backend  Backend
	sessions *session.Manager
	notify   Notifier
	log      *zap.Logger
	now      func() time.Time
	confirm  func(prompt string) bool

	mu        sync.Mutex
	user      model.User
	tasks     []model.Task
	schedule  []model.ScheduleEntry
	alertList []model.Alert
	stats     model.Stats
	critical  int
	infoCount int
	online    bool
	loading   bool
}

// Option customizes a Synchronizer.
type Option func(*Synchronizer)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) { s.now = now }
}

// WithConfirm replaces the interactive confirmation prompt.
func WithConfirm(confirm func(string) bool) Option {
	return func(s *Synchronizer) { s.confirm = confirm }
}

// New wires a Synchronizer. The session must already be established; Init
// picks the user out of it.
func New(backend Backend, sessions *session.Manager, notifier Notifier, log *zap.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		backend:  backend,
		sessions: sessions,
		notify:   notifier,
		log:      log,
		now:      time.Now,
		confirm:  func(string) bool { return true },
		online:   true,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init loads the persisted session, refreshes the full user profile
// (best-effort) and performs the initial dashboard load.
func (s *Synchronizer) Init(ctx context.Context) error {
	sess, ok := s.sessions.Load()
	if !ok {
		return errs.ErrSessionExpired
	}
	s.mu.Lock()
	s.user = sess.User
	s.mu.Unlock()

	s.LoadUser(ctx)
	return s.LoadDashboard(ctx)
}

// LoadUser refreshes the full profile from /usuarios/{id} and persists it.
// Failures are logged and swallowed; the cached identity keeps working.
func (s *Synchronizer) LoadUser(ctx context.Context) {
	s.mu.Lock()
	id := s.user.ID
	s.mu.Unlock()

	full, err := s.backend.GetUser(ctx, id)
	if err != nil {
		s.log.Warn("refresh user profile", zap.Int64("id", id), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.user = full
	s.mu.Unlock()
	if err := s.sessions.UpdateUser(full); err != nil {
		s.log.Warn("persist user profile", zap.Error(err))
	}
}

// LoadDashboard fetches the aggregate payload and replaces both
// collections. Re-entrant calls while a load is in flight are no-ops.
func (s *Synchronizer) LoadDashboard(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	id := s.user.ID
	s.mu.Unlock()

	data, err := s.backend.GetDashboard(ctx, id)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.online = false
		s.mu.Unlock()
		s.log.Error("load dashboard", zap.Error(err))
		s.notify.Push(model.SeverityError, "Error de conexión", "No se pudo conectar con el servidor")
		return fmt.Errorf("load dashboard: %w", err)
	}

	s.tasks = data.Tareas
	s.schedule = data.Horarios
	s.stats = model.Stats{
		Total:       data.TotalTareas,
		Completadas: data.TareasCompletadas,
		Pendientes:  data.TotalTareas - data.TareasCompletadas,
		Porcentaje:  data.PorcentajeAvance,
	}
	s.online = true
	s.regenerateAlertsLocked()
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Dashboard cargado", "Datos actualizados correctamente")
	return nil
}

// LoadTasks refreshes only the task collection.
func (s *Synchronizer) LoadTasks(ctx context.Context) error {
	s.mu.Lock()
	id := s.user.ID
	s.mu.Unlock()

	tasks, err := s.backend.ListTasks(ctx, id)
	if err != nil {
		s.log.Error("load tasks", zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudieron cargar las tareas")
		return fmt.Errorf("load tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.recomputeStatsLocked()
	s.regenerateAlertsLocked()
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Tareas actualizadas", fmt.Sprintf("%d tareas cargadas", len(tasks)))
	return nil
}

// LoadSchedule refreshes only the schedule collection.
func (s *Synchronizer) LoadSchedule(ctx context.Context) error {
	s.mu.Lock()
	id := s.user.ID
	s.mu.Unlock()

	entries, err := s.backend.ListSchedule(ctx, id)
	if err != nil {
		s.log.Error("load schedule", zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudieron cargar los horarios")
		return fmt.Errorf("load schedule: %w", err)
	}

	s.mu.Lock()
	s.schedule = entries
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Horarios actualizados", fmt.Sprintf("%d horarios cargados", len(entries)))
	return nil
}

// CreateTask validates the input, submits it and prepends the
// server-assigned record (most-recent-first ordering). Local state changes
// only after the server acknowledged.
func (s *Synchronizer) CreateTask(ctx context.Context, in TaskInput) error {
	if strings.TrimSpace(in.Titulo) == "" {
		s.notify.Push(model.SeverityError, "Error", "El título es requerido")
		return fmt.Errorf("%w: el título es requerido", errs.ErrValidation)
	}
	due, err := normalizeDue(in.DueLocal)
	if err != nil {
		s.notify.Push(model.SeverityError, "Error", "Fecha límite inválida")
		return fmt.Errorf("%w: fecha límite inválida", errs.ErrValidation)
	}

	draft := model.TaskDraft{
		Titulo:      in.Titulo,
		Descripcion: in.Descripcion,
		FechaLimite: due,
		Prioridad:   in.Prioridad,
		HorarioID:   in.HorarioID,
	}
	created, err := s.backend.CreateTask(ctx, draft)
	if err != nil {
		s.log.Error("create task", zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudo crear la tarea: "+detailOf(err))
		return fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append([]model.Task{created}, s.tasks...)
	s.recomputeStatsLocked()
	s.regenerateAlertsLocked()
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Tarea creada", fmt.Sprintf("%q creada correctamente", created.Titulo))
	return nil
}

// CompleteTask marks the task done server-side, then flips the local flag.
// A task no longer present locally (raced with a reload) is silently
// discarded, leaving collections and stats untouched.
func (s *Synchronizer) CompleteTask(ctx context.Context, id int64) error {
	if err := s.backend.CompleteTask(ctx, id); err != nil {
		s.log.Error("complete task", zap.Int64("id", id), zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudo completar la tarea")
		return fmt.Errorf("complete task: %w", err)
	}

	s.mu.Lock()
	var titulo string
	found := false
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completada = true
			titulo = s.tasks[i].Titulo
			found = true
			break
		}
	}
	if found {
		s.recomputeStatsLocked()
		s.regenerateAlertsLocked()
	}
	s.mu.Unlock()

	if found {
		s.notify.Push(model.SeveritySuccess, "¡Excelente!", fmt.Sprintf("Tarea %q completada", titulo))
	} else {
		s.log.Debug("completed task not in local collection", zap.Int64("id", id))
	}
	return nil
}

// CreateScheduleEntry validates and submits a schedule draft; the stored
// entry is appended in insertion order.
func (s *Synchronizer) CreateScheduleEntry(ctx context.Context, draft model.ScheduleDraft) error {
	if err := s.validateSchedule(draft.Actividad, draft.HoraInicio, draft.HoraFin); err != nil {
		return err
	}

	created, err := s.backend.CreateScheduleEntry(ctx, draft)
	if err != nil {
		s.log.Error("create schedule entry", zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudo crear el horario: "+detailOf(err))
		return fmt.Errorf("create schedule entry: %w", err)
	}

	s.mu.Lock()
	s.schedule = append(s.schedule, created)
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Horario creado", fmt.Sprintf("%q creado correctamente", created.Actividad))
	return nil
}

// UpdateScheduleEntry replaces the matching local entry with the stored
// version. Unknown ids are a local no-op.
func (s *Synchronizer) UpdateScheduleEntry(ctx context.Context, entry model.ScheduleEntry) error {
	if err := s.validateSchedule(entry.Actividad, entry.HoraInicio, entry.HoraFin); err != nil {
		return err
	}

	updated, err := s.backend.UpdateScheduleEntry(ctx, entry)
	if err != nil {
		s.log.Error("update schedule entry", zap.Int64("id", entry.ID), zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudo actualizar el horario")
		return fmt.Errorf("update schedule entry: %w", err)
	}

	s.mu.Lock()
	for i := range s.schedule {
		if s.schedule[i].ID == updated.ID {
			s.schedule[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notify.Push(model.SeveritySuccess, "Horario actualizado", fmt.Sprintf("%q actualizado correctamente", updated.Actividad))
	return nil
}

// DeleteScheduleEntry asks for confirmation before the destructive call and
// filters the entry out on success.
func (s *Synchronizer) DeleteScheduleEntry(ctx context.Context, id int64) error {
	if !s.confirm("¿Estás seguro de eliminar este horario?") {
		return nil
	}

	if err := s.backend.DeleteScheduleEntry(ctx, id); err != nil {
		s.log.Error("delete schedule entry", zap.Int64("id", id), zap.Error(err))
		s.notify.Push(model.SeverityError, "Error", "No se pudo eliminar el horario")
		return fmt.Errorf("delete schedule entry: %w", err)
	}

	s.mu.Lock()
	kept := s.schedule[:0]
	for _, e := range s.schedule {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.schedule = kept
	s.mu.Unlock()

	s.notify.Push(model.SeverityInfo, "Horario eliminado", "Horario eliminado correctamente")
	return nil
}

// Logout asks for confirmation, then wipes the persisted session entirely.
func (s *Synchronizer) Logout() bool {
	if !s.confirm("¿Estás seguro de que quieres cerrar sesión?") {
		return false
	}
	s.sessions.ClearAll()
	return true
}

// DismissAlert drops an alert until the next regeneration re-creates an
// equivalent one if its condition still holds.
func (s *Synchronizer) DismissAlert(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.alertList[:0]
	for _, a := range s.alertList {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.alertList = kept
	s.critical, s.infoCount = alerts.Counters(s.alertList)
}

func (s *Synchronizer) validateSchedule(actividad, inicio, fin string) error {
	if strings.TrimSpace(actividad) == "" {
		s.notify.Push(model.SeverityError, "Error", "La actividad es requerida")
		return fmt.Errorf("%w: la actividad es requerida", errs.ErrValidation)
	}
	// zero-padded 24h strings order lexicographically
	if inicio >= fin {
		s.notify.Push(model.SeverityError, "Error", "La hora de inicio debe ser anterior a la hora de fin")
		return fmt.Errorf("%w: la hora de inicio debe ser anterior a la hora de fin", errs.ErrValidation)
	}
	return nil
}

// recomputeStatsLocked rebuilds the derived statistics from the task
// collection, the single source of truth.
func (s *Synchronizer) recomputeStatsLocked() {
	total := len(s.tasks)
	completed := 0
	for _, t := range s.tasks {
		if t.Completada {
			completed++
		}
	}
	pct := 0
	if total > 0 {
		pct = int(float64(completed)/float64(total)*100 + 0.5)
	}
	s.stats = model.Stats{
		Total:       total,
		Completadas: completed,
		Pendientes:  total - completed,
		Porcentaje:  pct,
	}
}

func (s *Synchronizer) regenerateAlertsLocked() {
	s.alertList = alerts.Generate(s.tasks, s.now(), s.stats.Pendientes, s.user.Nombre)
	s.critical, s.infoCount = alerts.Counters(s.alertList)
}

// normalizeDue turns a datetime-local string into an RFC 3339 UTC instant.
// Already-absolute timestamps pass through re-encoded.
func normalizeDue(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("invalid due date %q", raw)
}

// detailOf surfaces the backend's message for error toasts when present.
func detailOf(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return err.Error()
}
