// Package memory is a thread-safe in-memory persistence layer implementing
// the storage interfaces. It is intended for tests and prototyping and keeps
// records in insertion order like the file store does.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenweb/siteapi/internal/app/domain/lead"
	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/domain/user"
)

// Memory implements storage.UserStore, storage.LeadStore and
// storage.MessageStore.
type Memory struct {
	mu       sync.RWMutex
	users    []user.User
	leads    []lead.Lead
	messages []message.Message
}

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{}
}

func (m *Memory) CreateUser(_ context.Context, u user.User) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp(&u.ID, &u.CreatedAt)
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]user.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *Memory) CreateLead(_ context.Context, l lead.Lead) (lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp(&l.ID, &l.CreatedAt)
	m.leads = append(m.leads, l)
	return l, nil
}

func (m *Memory) ListLeads(_ context.Context) ([]lead.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]lead.Lead, len(m.leads))
	copy(out, m.leads)
	return out, nil
}

func (m *Memory) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp(&msg.ID, &msg.CreatedAt)
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *Memory) ListMessages(_ context.Context) ([]message.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]message.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
