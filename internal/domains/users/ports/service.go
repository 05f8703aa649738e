package ports

import (
	"context"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
)

// Service exposes authentication use cases to adapters.
type Service interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
	Logout(ctx context.Context, token string) error
	SeedDefaultUsers(ctx context.Context) (int, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
