package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"genesis-lending/internal/domain/access"
	"genesis-lending/internal/domain/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	HeaderAuthToken = "x-auth-token"
	actorKey        = "auth.actor"
)

var ErrUnauthenticated = errors.New("No token, authorization denied")

// TokenParser resolves a bearer token to a public user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

type UserLookup interface {
	GetByUserID(ctx context.Context, userID string) (*user.User, error)
}

// Auth resolves the caller from x-auth-token or Authorization: Bearer and
// stores the actor on the echo context.
func Auth(tokens TokenParser, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c.Request())
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": ErrUnauthenticated.Error()})
			}
			uid, err := tokens.Parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token is not valid"})
			}
			u, err := users.GetByUserID(c.Request().Context(), uid)
			if err != nil {
				if !errors.Is(err, user.ErrNotFound) {
					zap.L().Error("auth: user lookup failed", zap.String("user_id", uid), zap.Error(err))
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token is not valid"})
			}
			c.Set(actorKey, access.ActorOf(u))
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); t != "" {
		return t
	}
	h := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// ActorFrom returns the caller set by Auth, or ErrUnauthenticated.
func ActorFrom(c echo.Context) (access.Actor, error) {
	a, ok := c.Get(actorKey).(access.Actor)
	if !ok {
		return access.Actor{}, ErrUnauthenticated
	}
	return a, nil
}

// SetActor is used by tests and by handlers mounted without Auth.
func SetActor(c echo.Context, a access.Actor) { c.Set(actorKey, a) }

// RequireRole rejects callers whose role differs with 403.
func RequireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, err := ActorFrom(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			if err := access.RequireRole(role, a.Role); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
			}
			return next(c)
		}
	}
}
