// Package users implements registration, authentication and listing of
// registered accounts.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumenweb/siteapi/internal/app/domain/user"
	"github.com/lumenweb/siteapi/internal/app/storage"
	"github.com/lumenweb/siteapi/pkg/logger"
)

var (
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrUsernameTaken indicates a case-insensitive username collision.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown usernames and password
	// mismatches so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service provides account operations over a UserStore.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs the users service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Register creates a new account. Uniqueness is checked case-insensitively;
// the stored username keeps the submitted casing.
func (s *Service) Register(ctx context.Context, username, password string) (user.User, error) {
	if username == "" || password == "" {
		return user.User{}, ErrMissingCredentials
	}

	existing, err := s.store.ListUsers(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, username) {
			return user.User{}, ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.CreateUser(ctx, user.User{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("username", created.Username).Info("user registered")
	return created, nil
}

// Authenticate verifies credentials. The username lookup is a case-sensitive
// exact match, unlike the registration uniqueness check; the asymmetry is
// inherited behavior and kept on purpose.
func (s *Service) Authenticate(ctx context.Context, username, password string) (user.User, error) {
	existing, err := s.store.ListUsers(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("list users: %w", err)
	}

	for _, u := range existing {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return user.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	return user.User{}, ErrInvalidCredentials
}

// List returns the public view of every account, in registration order.
func (s *Service) List(ctx context.Context) ([]user.Public, error) {
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.Public, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out, nil
}
