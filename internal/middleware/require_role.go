package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modacart/internal/auth"
	"modacart/internal/errors"
	"modacart/internal/model"
)

// RequireRole guards a JSON API group. It expects the cookie-token
// middleware to have stored verified claims under "user" and rejects
// principals below the required role. Admin-only groups pass
// model.RoleAdmin, which claims satisfy only by strict equality.
func RequireRole(required model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errors.Fail("unauthorized"))
			}

			allowed := claims.Role.Satisfies(required)
			if required == model.RoleAdmin {
				allowed = claims.Role.IsAdmin()
			}
			if !allowed {
				return c.JSON(http.StatusForbidden, errors.Fail("forbidden"))
			}

			return next(c)
		}
	}
}
