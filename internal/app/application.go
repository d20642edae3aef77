// Package app ties the domain services together and manages their lifecycle.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenweb/siteapi/internal/app/services/leads"
	"github.com/lumenweb/siteapi/internal/app/services/messages"
	"github.com/lumenweb/siteapi/internal/app/services/users"
	"github.com/lumenweb/siteapi/internal/app/session"
	"github.com/lumenweb/siteapi/internal/app/storage"
	"github.com/lumenweb/siteapi/internal/app/storage/memory"
	"github.com/lumenweb/siteapi/internal/app/system"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users    storage.UserStore
	Leads    storage.LeadStore
	Messages storage.MessageStore
}

// Application exposes the domain services and owns their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Users    *users.Service
	Leads    *leads.Service
	Messages *messages.Service
	Sessions *session.Manager
}

// New builds a fully initialised application with the provided stores. A nil
// session manager gets the 8-hour default.
func New(stores Stores, sessions *session.Manager, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Leads == nil {
		stores.Leads = mem
	}
	if stores.Messages == nil {
		stores.Messages = mem
	}
	if sessions == nil {
		sessions = session.NewManager(8*time.Hour, "site_session", log)
	}

	manager := system.NewManager()
	// The stores have no background work but stay visible to the lifecycle
	// manager alongside the services that do.
	if err := manager.Register(system.NoopService{ServiceName: "storage"}); err != nil {
		return nil, fmt.Errorf("register storage service: %w", err)
	}
	if err := manager.Register(sessions); err != nil {
		return nil, fmt.Errorf("register session service: %w", err)
	}

	return &Application{
		manager:  manager,
		log:      log,
		Users:    users.New(stores.Users, log),
		Leads:    leads.New(stores.Leads, log),
		Messages: messages.New(stores.Messages, log),
		Sessions: sessions,
	}, nil
}

// Start launches the managed background services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop shuts the managed services down.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
