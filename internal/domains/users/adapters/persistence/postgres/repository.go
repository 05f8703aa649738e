package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts a user. A taken email yields ports.ErrUserExists.
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}
	record := userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrUserExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.User{
		ID:           record.ID,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
		Role:         domain.Role(record.Role),
		CreatedAt:    record.CreatedAt,
	}, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error
	return count, err
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}
