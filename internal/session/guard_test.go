package session

import (
	"testing"

	"github.com/00Flaptzy/academicflow/internal/model"
)

func authedManager(t *testing.T) *Manager {
	t.Helper()
	mgr := NewManager(NewMemStore())
	if err := mgr.Save(model.Session{Token: "t", User: model.User{ID: 1, Nombre: "Ana"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return mgr
}

func TestGuard_ProtectedRoutes(t *testing.T) {
	t.Parallel()

	anon := NewGuard(NewManager(NewMemStore()))
	if d := anon.Check(RouteDashboard); d.Allow || d.Redirect != RouteLogin {
		t.Fatalf("anonymous dashboard access: %+v", d)
	}

	authed := NewGuard(authedManager(t))
	if d := authed.Check(RouteDashboard); !d.Allow {
		t.Fatalf("authenticated dashboard access denied: %+v", d)
	}
}

func TestGuard_PublicOnlyRoutes(t *testing.T) {
	t.Parallel()

	authed := NewGuard(authedManager(t))
	for _, route := range []string{RouteLogin, RouteRegister} {
		if d := authed.Check(route); d.Allow || d.Redirect != RouteDashboard {
			t.Fatalf("authenticated %s should bounce to dashboard: %+v", route, d)
		}
	}

	anon := NewGuard(NewManager(NewMemStore()))
	for _, route := range []string{RouteHome, RouteLogin, RouteRegister} {
		if d := anon.Check(route); !d.Allow {
			t.Fatalf("anonymous %s should be allowed: %+v", route, d)
		}
	}
}

func TestGuard_InvalidStoredShapeRedirects(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	_ = store.Set(KeyToken, "t")
	_ = store.Set(KeyUser, `{}`) // no id
	_ = store.Set(KeySessionStart, "2025-03-10T08:00:00Z")
	mgr := NewManager(store)

	g := NewGuard(mgr)
	if d := g.Check(RouteDashboard); d.Allow || d.Redirect != RouteLogin {
		t.Fatalf("malformed session must redirect to login: %+v", d)
	}
	// the half-persisted triple is dropped on the way out
	if _, ok := store.Get(KeyToken); ok {
		t.Fatalf("token should be cleared")
	}
	if _, ok := store.Get(KeySessionStart); ok {
		t.Fatalf("session start should be cleared")
	}
}

func TestGuard_OnUnauthorized(t *testing.T) {
	t.Parallel()

	mgr := authedManager(t)
	_ = mgr.RememberEmail("ana@uni.es", true)
	g := NewGuard(mgr)

	d := g.OnUnauthorized()
	if d.Allow || d.Redirect != RouteLogin {
		t.Fatalf("forced logout must redirect to login: %+v", d)
	}
	if mgr.IsAuthenticated() {
		t.Fatalf("session must be fully cleared")
	}
	if _, ok := mgr.SavedEmail(); ok {
		t.Fatalf("401 wipes the whole store, preferences included")
	}
}
