package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/session"
)

// SessionAuth returns the cookie credential adapter. It reads the session
// cookie, resolves it through the Redis-backed store and attaches the
// stored auth.Identity to the request context. Requests without a valid
// session are rejected with 401; the cookie and bearer adapters are never
// applied to the same route group.
func SessionAuth(store *session.Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no session"})
			}
			ident, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			auth.Store(c, ident)
			return next(c)
		}
	}
}
