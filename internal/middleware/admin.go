package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
)

// RequireAdmin aborts the request with 403 unless a credential adapter
// already resolved an administrator identity. The service layer applies
// the same gate on every mutating operation; this middleware exists for
// routes such as the admin panel feed that do not go through a gated
// service operation.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := auth.FromContext(c)
			if !ok || !ident.EsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "acceso denegado"})
			}
			return next(c)
		}
	}
}
