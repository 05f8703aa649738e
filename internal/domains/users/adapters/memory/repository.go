package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users keyed by normalized email.
type Repository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]domain.User{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return ports.ErrUserExists
	}
	r.users[user.Email] = *user
	return nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[email]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	return &user, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
