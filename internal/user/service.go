package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slugsera/backend-shop/internal/common"
)

// ErrEmailTaken is returned by repositories when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// User is a registered customer account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository persists user accounts. FindByCredentials returns (nil, nil)
// when no account matches the pair.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByCredentials(ctx context.Context, email, passwordHash string) (*User, error)
}

// Service implements registration and credential checks. Passwords are
// stored as bare SHA-256 digests and login is a straight (email, hash)
// lookup. This is a demo store, not hardened auth.
type Service struct {
	users Repository
	now   func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Users Repository
	Now   func() time.Time
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Users == nil {
		return nil, errors.New("user: repository is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{users: cfg.Users, now: now}, nil
}

// Register creates an account. A missing name defaults to the email local part.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: common.Sha256Hex(password),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, common.NewAppError("EMAIL_TAKEN", "email already registered", http.StatusBadRequest, err)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks credentials by hashing the supplied password and looking the
// pair up. Missing account and wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByCredentials(ctx, email, common.Sha256Hex(password))
	if err != nil {
		return User{}, fmt.Errorf("find user by credentials: %w", err)
	}
	if u == nil {
		return User{}, common.NewAppError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized, nil)
	}
	return *u, nil
}
