package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanledger-backend/internal/domain/user"
	"loanledger-backend/internal/usecase/auth"
)

// SessionCookie carries the opaque session token issued at login.
const SessionCookie = "lms_session"

const ctxSessionKey = "session"

// SessionResolver is satisfied by the auth usecase.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Session, error)
}

// SessionAuth rejects requests without a valid session cookie and stashes
// the resolved session on the echo context for handlers.
func SessionAuth(r SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			s, err := r.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			c.Set(ctxSessionKey, s)
			return next(c)
		}
	}
}

// RequireAdmin must run after SessionAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil || s.Role != user.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}

// SessionFrom returns the session placed by SessionAuth, or nil.
func SessionFrom(c echo.Context) *auth.Session {
	s, _ := c.Get(ctxSessionKey).(*auth.Session)
	return s
}
