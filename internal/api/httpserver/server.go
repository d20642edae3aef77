// Package httpserver wraps http.Server with the application's listener
// settings and graceful shutdown.
package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lumenweb/siteapi/internal/config"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// Server is a configured HTTP server.
type Server struct {
	srv *http.Server
	log *logger.Logger
}

// New builds a server for the given handler.
func New(cfg config.ServerConfig, log *logger.Logger, handler http.Handler) *Server {
	if log == nil {
		log = logger.NewDefault("httpserver")
	}
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
