// Package storage defines the persistence interfaces for the three record
// collections. Implementations must preserve insertion order and assign IDs
// and creation timestamps to new records.
package storage

import (
	"context"

	"github.com/lumenweb/siteapi/internal/app/domain/lead"
	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/domain/user"
)

// UserStore persists registered users.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// LeadStore persists captured leads.
type LeadStore interface {
	CreateLead(ctx context.Context, l lead.Lead) (lead.Lead, error)
	ListLeads(ctx context.Context) ([]lead.Lead, error)
}

// MessageStore persists contact messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, m message.Message) (message.Message, error)
	ListMessages(ctx context.Context) ([]message.Message, error)
}
