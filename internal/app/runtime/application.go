// Package runtime wires configuration, stores, services and the HTTP server
// into a runnable application.
package runtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lumenweb/siteapi/internal/api/httpserver"
	app "github.com/lumenweb/siteapi/internal/app"
	"github.com/lumenweb/siteapi/internal/app/httpapi"
	"github.com/lumenweb/siteapi/internal/app/metrics"
	"github.com/lumenweb/siteapi/internal/app/session"
	"github.com/lumenweb/siteapi/internal/app/storage/file"
	"github.com/lumenweb/siteapi/internal/config"
	"github.com/lumenweb/siteapi/internal/middleware"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// Application manages the full process lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	app        *app.Application
	httpServer *httpserver.Server
}

// NewApplication constructs the application with default wiring: flat-file
// stores under the configured data directory, cookie sessions, rate limiting
// and metrics instrumentation.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires the application for the given config.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}, "siteapi")

	store, err := file.New(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}

	sessions := session.NewManager(cfg.Session.TTL, cfg.Session.CookieName, log)

	application, err := app.New(app.Stores{
		Users:    store,
		Leads:    store,
		Messages: store,
	}, sessions, log)
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}

	handler := httpapi.NewHandler(application, httpapi.Options{
		TokenSecret: []byte(cfg.Auth.TokenSecret),
		TokenTTL:    cfg.Auth.TokenTTL,
		StaticDir:   cfg.Data.StaticDir,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, log),
		Logger:      log,
	})
	handler = middleware.SecurityHeaders(metrics.InstrumentHandler(handler))

	return &Application{
		cfg:        cfg,
		log:        log,
		app:        application,
		httpServer: httpserver.New(cfg.Server, log, handler),
	}, nil
}

// Run starts the background services and the HTTP server and blocks until the
// context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr())
		if err := a.httpServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains the HTTP server and stops background services.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := a.app.Stop(shutdownCtx); err != nil {
		a.log.WithError(err).Warn("error stopping services")
	}
	return nil
}
