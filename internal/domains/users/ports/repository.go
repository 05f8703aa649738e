package ports

import (
	"context"
	"errors"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
