// Package httpapi exposes the site backend over HTTP: auth and capture forms,
// the authenticated dashboard, the JSON API mirror, health and metrics.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	app "github.com/lumenweb/siteapi/internal/app"
	"github.com/lumenweb/siteapi/internal/app/auth"
	"github.com/lumenweb/siteapi/internal/app/metrics"
	"github.com/lumenweb/siteapi/internal/app/services/leads"
	"github.com/lumenweb/siteapi/internal/app/services/messages"
	"github.com/lumenweb/siteapi/internal/app/services/users"
	"github.com/lumenweb/siteapi/internal/middleware"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// Options configures the handler beyond the application services.
type Options struct {
	// TokenSecret signs API bearer tokens.
	TokenSecret []byte
	// TokenTTL bounds API token validity.
	TokenTTL time.Duration
	// StaticDir serves the landing pages; empty disables static serving.
	StaticDir string
	// RateLimiter guards the mutating routes; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	// Logger defaults to a component logger when nil.
	Logger *logger.Logger
}

type handler struct {
	app  *app.Application
	opts Options
	log  *logger.Logger
}

// NewHandler returns the router exposing the full HTTP surface.
func NewHandler(application *app.Application, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, opts: opts, log: log}

	guard := middleware.NewAuthGuard(application.Sessions, opts.TokenSecret, log)

	limited := func(fn http.HandlerFunc) http.Handler {
		if opts.RateLimiter == nil {
			return fn
		}
		return opts.RateLimiter.Handler(fn)
	}

	r := mux.NewRouter()
	r.Handle("/register", limited(h.register)).Methods(http.MethodPost)
	r.Handle("/login", limited(h.login)).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodPost)
	r.Handle("/lead", limited(h.lead)).Methods(http.MethodPost)
	r.Handle("/contact", limited(h.contact)).Methods(http.MethodPost)
	r.Handle("/dashboard", guard.Handler(http.HandlerFunc(h.dashboard))).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/token", h.apiToken).Methods(http.MethodPost)
	r.Handle("/api/dashboard", guard.Handler(http.HandlerFunc(h.apiDashboard))).Methods(http.MethodGet)

	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods(http.MethodGet)
	}

	return r
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	body, err := parseBody(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.app.Users.Register(r.Context(), body["username"], body["password"])
	switch {
	case errors.Is(err, users.ErrMissingCredentials):
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	case errors.Is(err, users.ErrUsernameTaken):
		http.Error(w, "username already exists", http.StatusConflict)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	metrics.RecordWrite("users")
	h.openSession(w, created.ID, created.Username)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := parseBody(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.app.Users.Authenticate(r.Context(), body["username"], body["password"])
	if errors.Is(err, users.ErrInvalidCredentials) {
		metrics.RecordLogin("failure")
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.RecordLogin("success")
	h.openSession(w, u.ID, u.Username)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.app.Sessions.IDFromRequest(r); ok {
		h.app.Sessions.Destroy(id)
	}
	h.app.Sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *handler) lead(w http.ResponseWriter, r *http.Request) {
	body, err := parseBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "msg": "invalid request body"})
		return
	}

	_, err = h.app.Leads.Capture(r.Context(), body["name"], body["email"], body["phone"])
	if errors.Is(err, leads.ErrMissingFields) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "msg": "name and email are required"})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.RecordWrite("leads")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *handler) contact(w http.ResponseWriter, r *http.Request) {
	body, err := parseBody(r)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	_, err = h.app.Messages.Submit(r.Context(), body["name"], body["email"], body["message"])
	if errors.Is(err, messages.ErrMissingFields) {
		http.Error(w, "all fields required", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.RecordWrite("messages")
	http.Redirect(w, r, "/thanks.html", http.StatusFound)
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CallerFromContext(r.Context())

	data, err := h.collectDashboard(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data.Viewer = caller.Username

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		h.log.WithError(err).Error("render dashboard")
	}
}

func (h *handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CallerFromContext(r.Context())

	data, err := h.collectDashboard(r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":     map[string]string{"id": caller.UserID, "username": caller.Username},
		"users":    data.Users,
		"leads":    data.Leads,
		"messages": data.Messages,
	})
}

func (h *handler) apiToken(w http.ResponseWriter, r *http.Request) {
	body, err := parseBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if body["username"] == "" || body["password"] == "" {
		writeError(w, http.StatusBadRequest, users.ErrMissingCredentials)
		return
	}

	u, err := h.app.Users.Authenticate(r.Context(), body["username"], body["password"])
	if errors.Is(err, users.ErrInvalidCredentials) {
		metrics.RecordLogin("failure")
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Username, h.opts.TokenSecret, h.opts.TokenTTL)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.RecordLogin("success")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) openSession(w http.ResponseWriter, userID, username string) {
	id := h.app.Sessions.Create(userID, username)
	h.app.Sessions.SetCookie(w, id)
}

func (h *handler) collectDashboard(r *http.Request) (*dashboardData, error) {
	ctx := r.Context()

	userList, err := h.app.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	leadList, err := h.app.Leads.List(ctx)
	if err != nil {
		return nil, err
	}
	messageList, err := h.app.Messages.List(ctx)
	if err != nil {
		return nil, err
	}

	return &dashboardData{Users: userList, Leads: leadList, Messages: messageList}, nil
}

func (h *handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// parseBody accepts either a JSON object of strings or a form-encoded body.
func parseBody(r *http.Request) (map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		defer r.Body.Close()
		body := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		return body, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	body := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		body[key] = r.PostForm.Get(key)
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
