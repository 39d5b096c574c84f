// Package session owns the authenticated-identity lifecycle: a persistent
// key-value store surviving restarts, a manager holding the in-memory
// session, and the route guard gating protected views.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Keys used in the persistent store. They mirror the backend client's
// historical storage contract, so state files stay portable.
const (
	KeyToken        = "token"
	KeyUser         = "usuario"
	KeySessionStart = "sessionStart"
	KeyRemember     = "remember"
	KeySavedEmail   = "savedEmail"
)

// Store is the persistence collaborator behind the session manager.
// Implementations must survive process restarts.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Clear() error
}

// FileStore keeps all keys in a single JSON document on disk.
type FileStore struct {
	path string
}

// DefaultDir resolves the per-user state directory, honoring XDG_CONFIG_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "academicflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "academicflow")
}

// NewFileStore opens (or prepares) the state file under dir.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir()
	}
	return &FileStore{path: filepath.Join(dir, "state.json")}
}

// Get returns the stored value for key, reporting presence. A missing or
// unreadable state file reads as an empty store.
func (s *FileStore) Get(key string) (string, bool) {
	m := s.read()
	v, ok := m[key]
	return v, ok
}

// Set stores key=value.
func (s *FileStore) Set(key, value string) error {
	m := s.read()
	m[key] = value
	return s.write(m)
}

// Delete removes key; absent keys are fine.
func (s *FileStore) Delete(key string) error {
	m := s.read()
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.write(m)
}

// Clear wipes the whole store.
func (s *FileStore) Clear() error {
	return s.write(map[string]string{})
}

func (s *FileStore) read() map[string]string {
	m := map[string]string{}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]string{}
	}
	return m
}

func (s *FileStore) write(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	m map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{m: map[string]string{}} }

func (s *MemStore) Get(key string) (string, bool) { v, ok := s.m[key]; return v, ok }

func (s *MemStore) Set(key, value string) error { s.m[key] = value; return nil }

func (s *MemStore) Delete(key string) error { delete(s.m, key); return nil }

func (s *MemStore) Clear() error { s.m = map[string]string{}; return nil }
