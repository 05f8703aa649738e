package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidUserID   = errors.New("user id is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrInvalidRole     = errors.New("role must be Admin or User")
)

const minPasswordLength = 6

// Role gates access to administrative endpoints.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole accepts role names case-insensitively.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "user":
		return RoleUser, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

// User is an account that can sign in to the API.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser validates the credentials and stores a bcrypt hash of password.
func NewUser(id uuid.UUID, email, password string, role Role, cost int) (*User, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &User{ID: id, Email: email, PasswordHash: hash, Role: role}, nil
}

// NormalizeEmail trims and lowercases email and checks it looks like an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// HashPassword bcrypt-hashes password. A cost below bcrypt.MinCost uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) < minPasswordLength {
		return "", ErrWeakPassword
	}
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u == nil || u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Principal is the identity attached to an authenticated request.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Session binds an opaque bearer token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	Role      Role
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s Session) Principal() Principal {
	return Principal{UserID: s.UserID, Email: s.Email, Role: s.Role}
}
