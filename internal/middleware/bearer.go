package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/utils"
)

// UsuarioLoader is the lookup the bearer adapter needs to turn a token
// subject into a live user record.
type UsuarioLoader interface {
	GetByID(ctx context.Context, id uint64) (model.Usuario, error)
}

// BearerAuth returns the bearer-token credential adapter. It validates
// the Authorization header, looks the subject up in the user store and
// attaches an auth.Identity to the request context. The admin flag comes
// from the stored user row, not from the token claim, so revoking admin
// rights takes effect on the next request.
func BearerAuth(secret string, usuarios UsuarioLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := usuarios.GetByID(ctx, claims.UsuarioID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			auth.Store(c, auth.Identity{UsuarioID: u.ID, Nombre: u.Nombre, EsAdmin: u.EsAdmin})
			return next(c)
		}
	}
}
