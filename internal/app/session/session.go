// Package session implements cookie-referenced server-side sessions. The
// cookie carries only an opaque UUID; all session data lives in the manager,
// keyed by that UUID, and disappears on expiry or logout.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenweb/siteapi/pkg/logger"
)

// Session identifies the authenticated caller.
type Session struct {
	UserID    string
	Username  string
	ExpiresAt time.Time
}

// Manager holds live sessions and doubles as a lifecycle service whose Start
// launches the expiry sweeper.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]Session

	ttl        time.Duration
	cookieName string
	log        *logger.Logger

	done chan struct{}
	wg   sync.WaitGroup

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewManager creates a session manager with the given TTL and cookie name.
func NewManager(ttl time.Duration, cookieName string, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.NewDefault("session")
	}
	return &Manager{
		sessions:   make(map[string]Session),
		ttl:        ttl,
		cookieName: cookieName,
		log:        log,
		now:        time.Now,
	}
}

// Create opens a session for the user and returns its opaque ID.
func (m *Manager) Create(userID, username string) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.sessions[id] = Session{
		UserID:    userID,
		Username:  username,
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.mu.Unlock()

	return id
}

// Get returns the session for the given ID if it exists and has not expired.
func (m *Manager) Get(id string) (Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.now().After(sess.ExpiresAt) {
		return Session{}, false
	}
	return sess, true
}

// Destroy removes the session with the given ID.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// SetCookie attaches the session cookie to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// IDFromRequest extracts the raw session ID from the request cookie without
// checking liveness. Logout uses it to destroy already-expired sessions too.
func (m *Manager) IDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// FromRequest resolves the caller's session from the request cookie.
func (m *Manager) FromRequest(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	return m.Get(cookie.Value)
}

// Name implements system.Service.
func (m *Manager) Name() string { return "sessions" }

// Start launches the background sweep of expired sessions.
func (m *Manager) Start(context.Context) error {
	m.done = make(chan struct{})
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.done:
				return
			}
		}
	}()
	return nil
}

// Stop terminates the sweeper.
func (m *Manager) Stop(context.Context) error {
	if m.done != nil {
		close(m.done)
		m.wg.Wait()
		m.done = nil
	}
	return nil
}

func (m *Manager) sweep() {
	now := m.now()

	m.mu.Lock()
	removed := 0
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.log.WithField("removed", removed).Debug("swept expired sessions")
	}
}
