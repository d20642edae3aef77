// Package leads implements marketing lead capture.
package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenweb/siteapi/internal/app/domain/lead"
	"github.com/lumenweb/siteapi/internal/app/storage"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// ErrMissingFields indicates a lead without name or email.
var ErrMissingFields = errors.New("name and email are required")

// Service provides lead operations over a LeadStore.
type Service struct {
	store storage.LeadStore
	log   *logger.Logger
}

// New constructs the leads service.
func New(store storage.LeadStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("leads")
	}
	return &Service{store: store, log: log}
}

// Capture appends a lead. Phone is optional; duplicates are allowed since
// marketing capture tolerates repeat submissions.
func (s *Service) Capture(ctx context.Context, name, email, phone string) (lead.Lead, error) {
	if name == "" || email == "" {
		return lead.Lead{}, ErrMissingFields
	}

	created, err := s.store.CreateLead(ctx, lead.Lead{Name: name, Email: email, Phone: phone})
	if err != nil {
		return lead.Lead{}, fmt.Errorf("create lead: %w", err)
	}

	s.log.WithField("email", created.Email).Info("lead captured")
	return created, nil
}

// List returns all captured leads in submission order.
func (s *Service) List(ctx context.Context) ([]lead.Lead, error) {
	all, err := s.store.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return all, nil
}
