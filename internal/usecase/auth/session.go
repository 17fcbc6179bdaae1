package auth

import (
	"context"
	"errors"
	"time"

	"loanledger-backend/internal/domain/user"
)

// ErrUnauthorized covers a missing, expired, or foreign session token.
var ErrUnauthorized = errors.New("unauthorized")

// Session is the opaque credential behind the portal's cookie.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore persists sessions with a TTL. The Redis implementation lives
// in the adapter layer; tests supply a function-backed mock.
type SessionStore interface {
	Create(ctx context.Context, s Session, ttl time.Duration) error
	// Get returns ErrUnauthorized when the token is unknown or expired.
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
