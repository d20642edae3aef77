// Package file implements the storage interfaces on top of flat JSON-array
// files, one file per collection. Every mutation is a whole-file
// read-modify-write; a per-collection mutex serializes writers and saves go
// through a temp file plus atomic rename so readers never observe a torn file.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumenweb/siteapi/internal/app/domain/lead"
	"github.com/lumenweb/siteapi/internal/app/domain/message"
	"github.com/lumenweb/siteapi/internal/app/domain/user"
)

// collection owns one JSON-array file. The mutex covers the full
// load-append-save cycle so concurrent writers cannot lose updates.
type collection[T any] struct {
	mu   sync.Mutex
	path string
}

func newCollection[T any](dir, name string) (*collection[T], error) {
	c := &collection[T]{path: filepath.Join(dir, name+".json")}
	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		if err := os.WriteFile(c.path, []byte("[]\n"), 0o644); err != nil {
			return nil, fmt.Errorf("seed collection %s: %w", name, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat collection %s: %w", name, err)
	}
	return c, nil
}

// load reads the full collection. Mutating callers must hold c.mu; readers
// get a point-in-time snapshot, which the atomic rename in save keeps intact.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	records := []T{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", c.path, err)
		}
	}
	return records, nil
}

func (c *collection[T]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", c.path, err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp for %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp for %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

func (c *collection[T]) appendRecord(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	return c.save(append(records, rec))
}

// Store persists the three collections under a single data directory.
type Store struct {
	users    *collection[user.User]
	leads    *collection[lead.Lead]
	messages *collection[message.Message]
}

// New creates the data directory and collection files as needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	users, err := newCollection[user.User](dir, "users")
	if err != nil {
		return nil, err
	}
	leads, err := newCollection[lead.Lead](dir, "leads")
	if err != nil {
		return nil, err
	}
	messages, err := newCollection[message.Message](dir, "messages")
	if err != nil {
		return nil, err
	}

	return &Store{users: users, leads: leads, messages: messages}, nil
}

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	stamp(&u.ID, &u.CreatedAt)
	if err := s.users.appendRecord(u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	return s.users.load()
}

func (s *Store) CreateLead(_ context.Context, l lead.Lead) (lead.Lead, error) {
	stamp(&l.ID, &l.CreatedAt)
	if err := s.leads.appendRecord(l); err != nil {
		return lead.Lead{}, err
	}
	return l, nil
}

func (s *Store) ListLeads(_ context.Context) ([]lead.Lead, error) {
	return s.leads.load()
}

func (s *Store) CreateMessage(_ context.Context, m message.Message) (message.Message, error) {
	stamp(&m.ID, &m.CreatedAt)
	if err := s.messages.appendRecord(m); err != nil {
		return message.Message{}, err
	}
	return m, nil
}

func (s *Store) ListMessages(_ context.Context) ([]message.Message, error) {
	return s.messages.load()
}

func stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
