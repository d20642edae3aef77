package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lumenweb/siteapi/internal/app/auth"
	"github.com/lumenweb/siteapi/internal/app/session"
	"github.com/lumenweb/siteapi/pkg/logger"
)

type contextKey string

const callerKey contextKey = "caller"

// Caller is the authenticated identity resolved by the auth guard.
type Caller struct {
	UserID   string
	Username string
}

// CallerFromContext returns the authenticated caller, if any.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

// AuthGuard authenticates requests via the session cookie or a bearer token.
type AuthGuard struct {
	sessions    *session.Manager
	tokenSecret []byte
	log         *logger.Logger
}

// NewAuthGuard creates the guard.
func NewAuthGuard(sessions *session.Manager, tokenSecret []byte, log *logger.Logger) *AuthGuard {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &AuthGuard{sessions: sessions, tokenSecret: tokenSecret, log: log}
}

// Handler rejects unauthenticated requests. Browser routes are redirected to
// the login page; API routes get a JSON 401.
func (g *AuthGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := g.resolve(r)
		if !ok {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *AuthGuard) resolve(r *http.Request) (Caller, bool) {
	if sess, ok := g.sessions.FromRequest(r); ok {
		return Caller{UserID: sess.UserID, Username: sess.Username}, true
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		claims, err := auth.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "), g.tokenSecret)
		if err != nil {
			g.log.WithError(err).Debug("bearer token rejected")
			return Caller{}, false
		}
		return Caller{UserID: claims.UserID, Username: claims.Username}, true
	}

	return Caller{}, false
}
