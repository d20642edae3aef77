package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(8*time.Hour, "site_session", nil)
}

func TestCreateGetDestroy(t *testing.T) {
	m := newTestManager(t)

	id := m.Create("u1", "Alice")
	if id == "" {
		t.Fatal("expected session ID")
	}

	sess, ok := m.Get(id)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sess.UserID != "u1" || sess.Username != "Alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	m.Destroy(id)
	if _, ok := m.Get(id); ok {
		t.Fatal("session should be gone after destroy")
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	m := newTestManager(t)
	id := m.Create("u1", "Alice")

	m.now = func() time.Time { return time.Now().Add(9 * time.Hour) }
	if _, ok := m.Get(id); ok {
		t.Fatal("expired session must not resolve")
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	m := newTestManager(t)
	stale := m.Create("u1", "Alice")

	m.now = func() time.Time { return time.Now().Add(9 * time.Hour) }
	fresh := m.Create("u2", "Bob")
	m.sweep()

	m.mu.RLock()
	_, staleKept := m.sessions[stale]
	_, freshKept := m.sessions[fresh]
	m.mu.RUnlock()

	if staleKept {
		t.Fatal("sweep should remove the expired session")
	}
	if !freshKept {
		t.Fatal("sweep must keep live sessions")
	}
}

func TestCookieAttributes(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()

	m.SetCookie(rec, "abc")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "site_session" || c.Value != "abc" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly {
		t.Fatal("cookie must be HTTP-only")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatal("cookie must be SameSite=Lax")
	}
	if c.MaxAge != int((8 * time.Hour).Seconds()) {
		t.Fatalf("cookie max age should be 8h, got %d", c.MaxAge)
	}
}

func TestFromRequest(t *testing.T) {
	m := newTestManager(t)
	id := m.Create("u1", "Alice")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "site_session", Value: id})

	sess, ok := m.FromRequest(req)
	if !ok || sess.Username != "Alice" {
		t.Fatalf("expected Alice's session, got %+v ok=%v", sess, ok)
	}

	bare := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if _, ok := m.FromRequest(bare); ok {
		t.Fatal("request without cookie must not resolve a session")
	}
}

func TestStartStop(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
