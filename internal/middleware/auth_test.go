package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumenweb/siteapi/internal/app/auth"
	"github.com/lumenweb/siteapi/internal/app/session"
)

var testSecret = []byte("test-secret")

func newGuard(t *testing.T) (*AuthGuard, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(8*time.Hour, "site_session", nil)
	return NewAuthGuard(sessions, testSecret, nil), sessions
}

func echoCaller() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			http.Error(w, "no caller", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(caller.Username))
	})
}

func TestGuardAcceptsSessionCookie(t *testing.T) {
	guard, sessions := newGuard(t)
	id := sessions.Create("u1", "Alice")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "site_session", Value: id})
	rec := httptest.NewRecorder()
	guard.Handler(echoCaller()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "Alice" {
		t.Fatalf("expected Alice, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGuardAcceptsBearerToken(t *testing.T) {
	guard, _ := newGuard(t)
	tok, err := auth.GenerateToken("u1", "Alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	guard.Handler(echoCaller()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "Alice" {
		t.Fatalf("expected Alice, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGuardRedirectsBrowsers(t *testing.T) {
	guard, _ := newGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	guard.Handler(echoCaller()).ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login.html" {
		t.Fatalf("expected redirect to /login.html, got %q", loc)
	}
}

func TestGuardReturnsJSONForAPIRoutes(t *testing.T) {
	guard, _ := newGuard(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	guard.Handler(echoCaller()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error, got content type %q", ct)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing frame options header")
	}
}
