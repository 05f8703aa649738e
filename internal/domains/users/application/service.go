package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long a bearer token stays valid.
const DefaultSessionTTL = 24 * time.Hour

const tokenBytes = 32

// DefaultUser is an account created by SeedDefaultUsers.
type DefaultUser struct {
	Email    string
	Password string
	Role     domain.Role
}

// DefaultUsers are seeded into an empty user store.
var DefaultUsers = []DefaultUser{
	{Email: "admin@local", Password: "Admin123!", Role: domain.RoleAdmin},
	{Email: "user@local", Password: "User123!", Role: domain.RoleUser},
}

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	ttl      time.Duration
	hashCost int
	now      func() time.Time
	newToken func() (string, error)
}

type Option func(*Service)

// WithSessionTTL overrides DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithHashCost sets the bcrypt cost used when seeding users.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

// WithClock overrides the time source for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		newToken: randomToken,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Login checks credentials and opens a session. Unknown emails and wrong passwords fail alike.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrUserNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	session := domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &session, nil
}

// Authenticate resolves a bearer token. Expired sessions are deleted and rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, mapError(ports.ErrSessionNotFound)
	}
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return domain.Principal{}, mapError(err)
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return domain.Principal{}, mapError(ports.ErrSessionNotFound)
	}
	return session.Principal(), nil
}

// Logout deletes the session of token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	err := s.sessions.Delete(ctx, token)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil
	}
	return err
}

// SeedDefaultUsers creates DefaultUsers when the store holds no users and reports how many were created.
func (s *Service) SeedDefaultUsers(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	created := 0
	for _, seed := range DefaultUsers {
		user, err := domain.NewUser(uuid.New(), seed.Email, seed.Password, seed.Role, s.hashCost)
		if err != nil {
			return created, mapError(err)
		}
		user.CreatedAt = s.now().UTC()
		err = s.repo.Create(ctx, user)
		if errors.Is(err, ports.ErrUserExists) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx, s.now())
}

func randomToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var _ ports.Service = (*Service)(nil)
