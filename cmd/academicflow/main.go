// Command academicflow is a terminal client for the AcademicFlow planner:
// it manages the login session, synchronizes tasks and weekly schedules,
// and renders a live dashboard with derived statistics and alerts.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/00Flaptzy/academicflow/internal/api"
	"github.com/00Flaptzy/academicflow/internal/config"
	"github.com/00Flaptzy/academicflow/internal/dashboard"
	"github.com/00Flaptzy/academicflow/internal/forms"
	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/notify"
	"github.com/00Flaptzy/academicflow/internal/refresh"
	"github.com/00Flaptzy/academicflow/internal/session"
	"github.com/00Flaptzy/academicflow/internal/timefmt"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `academicflow CLI
Usage:
  academicflow [-api URL] [-state-dir DIR] <cmd> [args]

Commands:
  version
  register   -nombre N -apellidos A -email E -p PASS -confirm PASS
  login      -email E -p PASS [-remember]
  logout
  status
  tasks      [-filter todas|pendientes|completadas] [-prioridad alta|media|baja]
  add-task   -titulo T [-desc D] [-due 2006-01-02T15:04] [-prioridad media]
  done       -id N
  schedule
  add-slot   -actividad A -dia LUNES -inicio 08:00 -fin 10:00
  edit-slot  -id N -actividad A -dia LUNES -inicio 08:00 -fin 10:00
  rm-slot    -id N
  dashboard
`)
	os.Exit(2)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// confirmPrompt asks a yes/no question on the terminal.
func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [s/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "s" || answer == "si" || answer == "sí" || answer == "y"
}

// app bundles the wired collaborators behind every subcommand.
type app struct {
	cfg      config.Config
	sessions *session.Manager
	guard    *session.Guard
	client   *api.Client
	log      *zap.Logger
}

func buildApp(apiURL, stateDir string) (*app, error) {
	cfg, err := config.Load()
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}

	logger, _ := zap.NewProduction()

	sessions := session.NewManager(session.NewFileStore(cfg.StateDir))
	guard := session.NewGuard(sessions)

	client := api.New(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithTokenSource(func() string {
			if s, ok := sessions.Load(); ok {
				return s.Token
			}
			return ""
		}),
		api.WithUnauthorizedHook(func() {
			d := guard.OnUnauthorized()
			fmt.Fprintf(os.Stderr, "Sesión expirada. Vuelve a iniciar sesión (%s).\n", d.Redirect)
		}),
	)

	return &app{cfg: cfg, sessions: sessions, guard: guard, client: client, log: logger}, nil
}

func (a *app) requireSession() model.Session {
	if d := a.guard.Check(session.RouteDashboard); !d.Allow {
		fail(fmt.Errorf("no has iniciado sesión (usa 'academicflow login')"))
	}
	s, _ := a.sessions.Load()
	return s
}

func (a *app) newSync() *dashboard.Synchronizer {
	queue := notify.New()
	return dashboard.New(a.client, a.sessions, queue, a.log, dashboard.WithConfirm(confirmPrompt))
}

func main() {
	apiURL := flag.String("api", "", "API root (overrides ACADEMICFLOW_API_URL)")
	stateDir := flag.String("state-dir", "", "session state directory")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	if cmd == "version" {
		fmt.Printf("academicflow %s (%s)\n", version, buildDate)
		return
	}

	a, err := buildApp(*apiURL, *stateDir)
	if err != nil {
		fail(err)
	}
	defer func() { _ = a.log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()

	switch cmd {
	case "register":
		cmdRegister(ctx, a, flag.Args()[1:])
	case "login":
		cmdLogin(ctx, a, flag.Args()[1:])
	case "logout":
		cmdLogout(a)
	case "status":
		cmdStatus(a)
	case "tasks":
		cmdTasks(ctx, a, flag.Args()[1:])
	case "add-task":
		cmdAddTask(ctx, a, flag.Args()[1:])
	case "done":
		cmdDone(ctx, a, flag.Args()[1:])
	case "schedule":
		cmdSchedule(ctx, a)
	case "add-slot":
		cmdAddSlot(ctx, a, flag.Args()[1:])
	case "edit-slot":
		cmdEditSlot(ctx, a, flag.Args()[1:])
	case "rm-slot":
		cmdRemoveSlot(ctx, a, flag.Args()[1:])
	case "dashboard":
		cmdDashboard(a)
	default:
		usage()
	}
}

func cmdRegister(ctx context.Context, a *app, args []string) {
	if d := a.guard.Check(session.RouteRegister); !d.Allow {
		fail(fmt.Errorf("ya has iniciado sesión; cierra sesión primero"))
	}

	fs := flag.NewFlagSet("register", flag.ExitOnError)
	nombre := fs.String("nombre", "", "first name")
	apellidos := fs.String("apellidos", "", "surname")
	email := fs.String("email", "", "email")
	password := fs.String("p", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	_ = fs.Parse(args)

	form := forms.RegisterForm{
		Nombre:          *nombre,
		Apellidos:       *apellidos,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	}
	if err := form.Validate(); err != nil {
		fail(err)
	}

	user, err := a.client.Register(ctx, api.RegisterRequest{
		Nombre:    form.Nombre,
		Apellidos: form.Apellidos,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Registro exitoso: %s <%s>. Ahora inicia sesión.\n", user.FullName(), user.Email)
}

func cmdLogin(ctx context.Context, a *app, args []string) {
	if d := a.guard.Check(session.RouteLogin); !d.Allow {
		fail(fmt.Errorf("ya has iniciado sesión"))
	}

	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("p", "", "password")
	remember := fs.Bool("remember", false, "remember this email")
	_ = fs.Parse(args)

	if *email == "" {
		if saved, ok := a.sessions.SavedEmail(); ok {
			*email = saved
		}
	}

	form := forms.LoginForm{Email: *email, Password: *password, Remember: *remember}
	if err := form.Validate(); err != nil {
		fail(err)
	}

	resp, err := a.client.Login(ctx, form.Email, form.Password)
	if err != nil {
		fail(err)
	}
	if err := a.sessions.Save(resp.Session(time.Now())); err != nil {
		fail(err)
	}
	if err := a.sessions.RememberEmail(form.Email, form.Remember); err != nil {
		a.log.Warn("remember email", zap.Error(err))
	}

	fmt.Printf("Bienvenido %s\n", resp.Nombre)
	if exp, ok := a.sessions.TokenExpiry(); ok {
		fmt.Printf("El token expira: %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
}

func cmdLogout(a *app) {
	if !a.sessions.IsAuthenticated() {
		fmt.Println("No hay sesión activa.")
		return
	}
	if !confirmPrompt("¿Estás seguro de que quieres cerrar sesión?") {
		return
	}
	a.sessions.ClearAll()
	fmt.Println("Sesión cerrada.")
}

func cmdStatus(a *app) {
	s := a.requireSession()
	fmt.Printf("Usuario:  %s <%s> (%s)\n", s.User.FullName(), s.User.Email, s.User.Rol)
	if start, ok := a.sessions.SessionStart(); ok {
		fmt.Printf("Sesión iniciada: %s (activa %s)\n",
			timefmt.LongDate(start.Local()), timefmt.Elapsed(start, time.Now()))
	}
	if exp, ok := a.sessions.TokenExpiry(); ok {
		fmt.Printf("Token expira: %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
}

func cmdTasks(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	filter := fs.String("filter", dashboard.FilterAll, "todas|pendientes|completadas")
	prioridad := fs.String("prioridad", dashboard.FilterAll, "alta|media|baja")
	_ = fs.Parse(args)

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	printTasks(s.FilteredTasks(*filter, *prioridad))

	st := s.Stats()
	fmt.Printf("\n%d tareas, %d completadas, %d pendientes (%d%%)\n",
		st.Total, st.Completadas, st.Pendientes, st.Porcentaje)
}

func cmdAddTask(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	titulo := fs.String("titulo", "", "title")
	desc := fs.String("desc", "", "description")
	due := fs.String("due", "", "due date (2006-01-02T15:04), defaults to tomorrow 09:00")
	prioridad := fs.String("prioridad", model.PriorityMedium, "alta|media|baja")
	horario := fs.Int64("horario", 0, "linked schedule entry id")
	_ = fs.Parse(args)

	if *due == "" {
		*due = time.Now().AddDate(0, 0, 1).Format("2006-01-02") + "T09:00"
	}
	in := dashboard.TaskInput{Titulo: *titulo, Descripcion: *desc, DueLocal: *due, Prioridad: *prioridad}
	if *horario > 0 {
		in.HorarioID = horario
	}

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	if err := s.CreateTask(ctx, in); err != nil {
		fail(err)
	}
	fmt.Printf("Tarea %q creada.\n", *titulo)
}

func cmdDone(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("done", flag.ExitOnError)
	id := fs.Int64("id", 0, "task id")
	_ = fs.Parse(args)
	if *id <= 0 {
		fail(fmt.Errorf("need -id"))
	}

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	if err := s.CompleteTask(ctx, *id); err != nil {
		fail(err)
	}
	fmt.Println("Tarea completada.")
}

func cmdSchedule(ctx context.Context, a *app) {
	a.requireSession()

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	printSchedule(s)
	fmt.Printf("\nDía más ocupado: %s. Horas semanales: %d.\n", s.BusiestDay(), s.TotalScheduledHours())
}

func cmdAddSlot(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("add-slot", flag.ExitOnError)
	actividad := fs.String("actividad", "", "activity")
	dia := fs.String("dia", "LUNES", "weekday")
	inicio := fs.String("inicio", "08:00", "start (HH:MM)")
	fin := fs.String("fin", "10:00", "end (HH:MM)")
	_ = fs.Parse(args)

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	draft := model.ScheduleDraft{Actividad: *actividad, Dia: *dia, HoraInicio: *inicio, HoraFin: *fin}
	if err := s.CreateScheduleEntry(ctx, draft); err != nil {
		fail(err)
	}
	fmt.Printf("Horario %q creado (%s %s-%s).\n", *actividad, dashboard.DayName(*dia), *inicio, *fin)
}

func cmdEditSlot(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("edit-slot", flag.ExitOnError)
	id := fs.Int64("id", 0, "entry id")
	actividad := fs.String("actividad", "", "activity")
	dia := fs.String("dia", "LUNES", "weekday")
	inicio := fs.String("inicio", "08:00", "start (HH:MM)")
	fin := fs.String("fin", "10:00", "end (HH:MM)")
	_ = fs.Parse(args)
	if *id <= 0 {
		fail(fmt.Errorf("need -id"))
	}

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	entry := model.ScheduleEntry{ID: *id, Actividad: *actividad, Dia: *dia, HoraInicio: *inicio, HoraFin: *fin}
	if err := s.UpdateScheduleEntry(ctx, entry); err != nil {
		fail(err)
	}
	fmt.Println("Horario actualizado.")
}

func cmdRemoveSlot(ctx context.Context, a *app, args []string) {
	a.requireSession()

	fs := flag.NewFlagSet("rm-slot", flag.ExitOnError)
	id := fs.Int64("id", 0, "entry id")
	_ = fs.Parse(args)
	if *id <= 0 {
		fail(fmt.Errorf("need -id"))
	}

	s := a.newSync()
	if err := s.Init(ctx); err != nil {
		fail(err)
	}
	if err := s.DeleteScheduleEntry(ctx, *id); err != nil {
		fail(err)
	}
}

// cmdDashboard runs the live view: an initial load, a 1-second clock tick
// and a 2-minute reload tick, all torn down together on interrupt.
func cmdDashboard(a *app) {
	sess := a.requireSession()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := notify.New()
	s := dashboard.New(a.client, a.sessions, queue, a.log, dashboard.WithConfirm(confirmPrompt))
	if err := s.Init(ctx); err != nil {
		a.log.Error("initial load", zap.Error(err))
	}

	start := sess.StartedAt
	if start.IsZero() {
		start = time.Now()
	}

	render := func(now time.Time) {
		renderDashboard(s, queue, start, now)
	}
	render(time.Now())

	ticker := refresh.New(time.Local)
	if _, err := ticker.Every(a.cfg.ClockInterval, func() {
		render(time.Now())
	}); err != nil {
		fail(err)
	}
	if _, err := ticker.Every(a.cfg.ReloadInterval, func() {
		loadCtx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		if err := s.LoadDashboard(loadCtx); err != nil {
			a.log.Warn("scheduled reload", zap.Error(err))
		}
	}); err != nil {
		fail(err)
	}
	ticker.Start()
	defer ticker.Stop()

	<-ctx.Done()
	fmt.Println("\nHasta pronto.")
}
