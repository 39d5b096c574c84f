package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/00Flaptzy/academicflow/internal/api"
	"github.com/00Flaptzy/academicflow/internal/errs"
	"github.com/00Flaptzy/academicflow/internal/model"
	"github.com/00Flaptzy/academicflow/internal/session"
)

// A 401 on any authenticated endpoint must clear the whole persisted
// session and point the user at the login view, even mid-operation.
func TestForcedLogoutOnUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	mgr := session.NewManager(session.NewMemStore())
	if err := mgr.Save(model.Session{Token: "stale", User: model.User{ID: 1, Nombre: "Ana"}}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	_ = mgr.RememberEmail("ana@uni.es", true)
	guard := session.NewGuard(mgr)

	var redirect string
	client := api.New(srv.URL,
		tokenFromManager(mgr),
		api.WithUnauthorizedHook(func() { redirect = guard.OnUnauthorized().Redirect }),
	)

	s := New(client, mgr, &fakeNotifier{}, zap.NewNop())
	s.mu.Lock()
	s.user = model.User{ID: 1, Nombre: "Ana"}
	s.mu.Unlock()

	err := s.CompleteTask(context.Background(), 5)
	if !errors.Is(err, errs.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
	if redirect != session.RouteLogin {
		t.Fatalf("redirect = %q, want %q", redirect, session.RouteLogin)
	}
	if mgr.IsAuthenticated() {
		t.Fatalf("session must be fully cleared")
	}
	if _, ok := mgr.SavedEmail(); ok {
		t.Fatalf("forced logout wipes the whole store")
	}
}

// tokenFromManager adapts the session manager as the client's token source.
func tokenFromManager(mgr *session.Manager) api.Option {
	return api.WithTokenSource(func() string {
		if s, ok := mgr.Load(); ok {
			return s.Token
		}
		return ""
	})
}
