package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/pkg/jwtutil"
)

// Context keys set by Auth.
const (
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// TokenValidator is satisfied by *jwtutil.Manager.
type TokenValidator interface {
	Validate(token string) (*jwtutil.UserClaims, error)
}

// Auth validates the bearer token and injects its claims into context.
func Auth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUsername, claims.Name)
			c.Set(ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}
