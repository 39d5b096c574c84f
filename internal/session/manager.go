package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/00Flaptzy/academicflow/internal/model"
)

// Manager owns the in-memory session and keeps it in sync with the
// persistent store. The store stays the source of truth between
// invocations; validity checks always re-read it, so a session cleared by
// another process is caught on the next check.
type Manager struct {
	mu    sync.Mutex
	store Store
}

// NewManager wires a Manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads the persisted session. It reports false for any malformed or
// incomplete shape: missing token, unparsable user JSON, or a user without
// an id. Parse failures are swallowed, not propagated.
func (m *Manager) Load() (model.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() (model.Session, bool) {
	token, ok := m.store.Get(KeyToken)
	if !ok || token == "" {
		return model.Session{}, false
	}
	raw, ok := m.store.Get(KeyUser)
	if !ok {
		return model.Session{}, false
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return model.Session{}, false
	}

	s := model.Session{Token: token, User: user}
	if !s.Valid() {
		return model.Session{}, false
	}
	if start, ok := m.store.Get(KeySessionStart); ok {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			s.StartedAt = t
		}
	}
	return s, true
}

// IsAuthenticated re-reads the store and reports whether a valid session
// is present.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.Load()
	return ok
}

// Save persists the session: token, user JSON and the session-start marker.
func (m *Manager) Save(s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(KeyToken, s.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	raw, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	started := s.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	return m.store.Set(KeySessionStart, started.Format(time.RFC3339))
}

// UpdateUser replaces only the persisted user record, keeping token and
// session start. Used after refreshing the full profile from the backend.
func (m *Manager) UpdateUser(u model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return m.store.Set(KeyUser, string(raw))
}

// Clear drops the session triple (token, user, session start) but keeps
// user preferences such as the remembered email.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.store.Delete(KeyToken)
	_ = m.store.Delete(KeyUser)
	_ = m.store.Delete(KeySessionStart)
}

// ClearAll wipes the entire store. This is the forced-logout path taken on
// any upstream 401 and on explicit logout.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.store.Clear()
}

// RememberEmail stores or forgets the login email depending on remember.
func (m *Manager) RememberEmail(email string, remember bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if remember {
		if err := m.store.Set(KeyRemember, "true"); err != nil {
			return err
		}
		return m.store.Set(KeySavedEmail, email)
	}
	_ = m.store.Delete(KeyRemember)
	return m.store.Delete(KeySavedEmail)
}

// SavedEmail returns the remembered login email, if any.
func (m *Manager) SavedEmail() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.store.Get(KeyRemember); !ok || v != "true" {
		return "", false
	}
	email, ok := m.store.Get(KeySavedEmail)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// SessionStart returns the persisted session-start instant, if present.
func (m *Manager) SessionStart() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.store.Get(KeySessionStart)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TokenExpiry reads the expiry claim out of the stored access token without
// validating the signature. Diagnostic only: expiry is enforced by the
// server through 401 responses, never locally.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	s, ok := m.Load()
	if !ok {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(s.Token, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
