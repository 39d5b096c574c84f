package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/00Flaptzy/academicflow/internal/errs"
)

func TestDo_BearerHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":1,"nombre":"Ana"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "tok123" }))
	if _, err := c.GetUser(context.Background(), 1); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestDo_LoginSkipsBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"token":"t","id":1,"nombre":"Ana","email":"a@b.es","rol":"USER"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "stale" }))
	resp, err := c.Login(context.Background(), "a@b.es", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("login must not carry a bearer token, got %q", gotAuth)
	}
	if resp.Token != "t" || resp.ID != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestDo_UnauthorizedFiresHookAndMapsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hooked := 0
	c := New(srv.URL,
		WithTokenSource(func() string { return "expired" }),
		WithUnauthorizedHook(func() { hooked++ }),
	)

	err := c.CompleteTask(context.Background(), 9)
	if !errors.Is(err, errs.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
	if hooked != 1 {
		t.Fatalf("hook calls = %d, want 1", hooked)
	}
}

func TestDo_LoginRejectionLeavesHookAlone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"credenciales incorrectas"}`))
	}))
	defer srv.Close()

	hooked := 0
	c := New(srv.URL, WithUnauthorizedHook(func() { hooked++ }))

	_, err := c.Login(context.Background(), "a@b.es", "bad")
	if !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if hooked != 0 {
		t.Fatalf("login rejection must not force logout")
	}
}

func TestDo_ServerErrorDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "t" }))
	_, err := c.ListTasks(context.Background(), 1)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want StatusError, got %v", err)
	}
	if se.Code != 500 || se.Detail != "boom" {
		t.Fatalf("StatusError = %+v", se)
	}
}

func TestDo_OfflineMapsToErrOffline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, WithTokenSource(func() string { return "t" }))
	_, err := c.GetDashboard(context.Background(), 1)
	if !errors.Is(err, errs.ErrOffline) {
		t.Fatalf("want ErrOffline, got %v", err)
	}
}
