package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth. A
// rejected role yields domain.ErrForbidden for the HTTP error handler.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// AdminOnlyDeletes lets every method through except DELETE, which requires
// the Admin role.
func AdminOnlyDeletes() echo.MiddlewareFunc {
	adminOnly := RBAC(domain.RoleAdmin)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := adminOnly(next)
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodDelete {
				return guarded(c)
			}
			return next(c)
		}
	}
}
