// Package api is the bearer-authenticated REST client for the AcademicFlow
// backend. It maps transport and status failures onto the shared error
// taxonomy and fires the forced-logout hook on any 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/00Flaptzy/academicflow/internal/errs"
	"github.com/00Flaptzy/academicflow/internal/model"
)

// StatusError is a non-2xx response outside the dedicated auth paths. The
// Detail carries the backend's message when one could be extracted.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server responded %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("server responded %d", e.Code)
}

// Client talks to the backend API root. The token source is consulted per
// request so a refreshed session is picked up without rebuilding the
// client; onUnauthorized is invoked once per 401 on an authenticated call.
type Client struct {
	baseURL        string
	http           *http.Client
	token          func() string
	onUnauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource sets the bearer token provider for authenticated calls.
func WithTokenSource(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// WithUnauthorizedHook registers the global 401 handler (forced logout).
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// New constructs a Client against the given API root.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   func() string { return "" },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's flat login payload.
type LoginResponse struct {
	Token  string `json:"token"`
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}

// Session converts the login payload into a session value.
func (r LoginResponse) Session(now time.Time) model.Session {
	return model.Session{
		Token: r.Token,
		User: model.User{
			ID:     r.ID,
			Nombre: r.Nombre,
			Email:  r.Email,
			Rol:    r.Rol,
		},
		StartedAt: now,
	}
}

// RegisterRequest is the POST /auth/register payload.
type RegisterRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login authenticates with email and password. Rejections (400/401) map to
// errs.ErrUnauthorized and leave session state untouched.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &out, false)
	return out, err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &out, false)
	return out, err
}

// GetUser fetches the full profile for the given user id.
func (c *Client) GetUser(ctx context.Context, id int64) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &out, true)
	return out, err
}

// GetDashboard fetches the aggregate dashboard payload.
func (c *Client) GetDashboard(ctx context.Context, userID int64) (model.DashboardData, error) {
	var out model.DashboardData
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dashboard/%d", userID), nil, &out, true)
	return out, err
}

// ListTasks fetches all tasks belonging to the user.
func (c *Client) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tareas/usuario/%d", userID), nil, &out, true)
	return out, err
}

// CreateTask submits a draft; the server assigns the id.
func (c *Client) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	var out model.Task
	err := c.do(ctx, http.MethodPost, "/tareas", draft, &out, true)
	return out, err
}

// CompleteTask marks the task done on the server.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/tareas/%d/completar", id), struct{}{}, nil, true)
}

// ListSchedule fetches the user's weekly schedule entries.
func (c *Client) ListSchedule(ctx context.Context, userID int64) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/horarios/usuario/%d", userID), nil, &out, true)
	return out, err
}

// CreateScheduleEntry submits a schedule draft.
func (c *Client) CreateScheduleEntry(ctx context.Context, draft model.ScheduleDraft) (model.ScheduleEntry, error) {
	var out model.ScheduleEntry
	err := c.do(ctx, http.MethodPost, "/horarios", draft, &out, true)
	return out, err
}

// UpdateScheduleEntry replaces the entry server-side and returns the stored
// version.
func (c *Client) UpdateScheduleEntry(ctx context.Context, entry model.ScheduleEntry) (model.ScheduleEntry, error) {
	var out model.ScheduleEntry
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/horarios/%d", entry.ID), entry, &out, true)
	return out, err
}

// DeleteScheduleEntry removes the entry server-side.
func (c *Client) DeleteScheduleEntry(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/horarios/%d", id), nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	detail := extractDetail(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		if authed {
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return fmt.Errorf("%s %s: %w", method, path, errs.ErrSessionExpired)
		}
		return fmt.Errorf("%w: %s", errs.ErrUnauthorized, orDefault(detail, "credenciales incorrectas"))
	}
	if !authed && resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", errs.ErrUnauthorized, orDefault(detail, "datos inválidos"))
	}

	return &StatusError{Code: resp.StatusCode, Detail: detail}
}

// extractDetail pulls a best-effort message out of an error body shaped
// like {"message": "..."} or {"error": "..."}.
func extractDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
