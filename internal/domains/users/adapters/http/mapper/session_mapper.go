package mapper

import (
	"time"

	"github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "Bearer"

// Login is the inbound credentials payload.
type Login struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Authentication answers a successful login.
type Authentication struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// FromSession maps an issued session to the login response.
func FromSession(session *domain.Session) Authentication {
	if session == nil {
		return Authentication{TokenType: TokenTypeBearer}
	}
	return Authentication{
		AccessToken: session.Token,
		TokenType:   TokenTypeBearer,
		Role:        string(session.Role),
		ExpiresAt:   session.ExpiresAt.UTC(),
	}
}
