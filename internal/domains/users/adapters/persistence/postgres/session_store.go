package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
	userports "github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

// SessionStore persists bearer sessions in PostgreSQL.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:128"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id;not null;index"`
	Email     string    `gorm:"column:email;not null"`
	Role      string    `gorm:"column:role;type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts a session keyed by token.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if strings.TrimSpace(session.Token) == "" || session.UserID == uuid.Nil {
		return errors.New("session token and user id are required")
	}
	rec := sessionRecord{
		Token:     session.Token,
		UserID:    session.UserID,
		Email:     session.Email,
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "email", "role", "expires_at"}),
		}).
		Create(&rec).Error
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	if err := s.db.WithContext(ctx).First(&rec, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userports.ErrSessionNotFound
		}
		return nil, err
	}
	return &domain.Session{
		Token:     rec.Token,
		UserID:    rec.UserID,
		Email:     rec.Email,
		Role:      domain.Role(rec.Role),
		ExpiresAt: rec.ExpiresAt.UTC(),
	}, nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "token = ?", token).Error
}

// PurgeExpired removes all expired sessions. Use for housekeeping or cron.
func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
