// Package messages implements contact-form message submission.
package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/storage"
	"github.com/lumenweb/siteapi/pkg/logger"
)

// ErrMissingFields indicates a submission without name, email or message body.
var ErrMissingFields = errors.New("name, email and message are required")

// Service provides contact-message operations over a MessageStore.
type Service struct {
	store storage.MessageStore
	log   *logger.Logger
}

// New constructs the messages service.
func New(store storage.MessageStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("messages")
	}
	return &Service{store: store, log: log}
}

// Submit appends a contact message.
func (s *Service) Submit(ctx context.Context, name, email, body string) (message.Message, error) {
	if name == "" || email == "" || body == "" {
		return message.Message{}, ErrMissingFields
	}

	created, err := s.store.CreateMessage(ctx, message.Message{Name: name, Email: email, Message: body})
	if err != nil {
		return message.Message{}, fmt.Errorf("create message: %w", err)
	}

	s.log.WithField("email", created.Email).Info("contact message received")
	return created, nil
}

// List returns all messages in submission order.
func (s *Service) List(ctx context.Context) ([]message.Message, error) {
	all, err := s.store.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return all, nil
}
