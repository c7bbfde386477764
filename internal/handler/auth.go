package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/config"
	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/service"
	"github.com/jmvillar/turnero/internal/session"
	"github.com/jmvillar/turnero/internal/utils"
)

// AuthHandler implements both authentication surfaces over the same user
// store: the cookie-session endpoints used by the admin panel and the
// bearer-token endpoints used by the JSON API. Sessions may be nil when
// Redis is unavailable, in which case the session surface is not routed.
type AuthHandler struct {
	Cfg      config.Config
	Usuarios service.UsuarioStore
	Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, usuarios service.UsuarioStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Usuarios: usuarios, Sessions: sessions}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}
type registerReq struct {
	Nombre   string `json:"nombre" form:"nombre"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// checkCredentials verifies email and password against the user store.
// Returns false for unknown emails and wrong passwords alike.
func (h *AuthHandler) checkCredentials(c echo.Context, req loginReq) (usuarioResp, bool, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Usuarios.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usuarioResp{}, false, nil
		}
		return usuarioResp{}, false, err
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return usuarioResp{}, false, nil
	}
	return toUsuarioResp(u), true, nil
}

// APILogin handles POST /api/auth/login and returns an access token.
func (h *AuthHandler) APILogin(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email y password requeridos"})
	}

	user, ok, err := h.checkCredentials(c, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "email o password incorrectos"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.EsAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": access.Token,
		"user":         user,
	})
}

// APIRegister handles POST /api/auth/register. New users are never
// administrators; the admin flag can only be granted directly in the
// database.
func (h *AuthHandler) APIRegister(c echo.Context) error {
	user, ok := h.register(c)
	if !ok {
		return nil // response already written
	}
	access, tokErr := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.EsAdmin, h.Cfg.AccessTTLMin)
	if tokErr != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"access_token": access.Token,
		"user":         user,
	})
}

// Me handles GET /api/auth/me for authenticated callers.
func (h *AuthHandler) Me(c echo.Context) error {
	ident, ok := auth.FromContext(c)
	if !ok || ident.Anonymous() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Usuarios.GetByID(ctx, ident.UsuarioID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUsuarioResp(u))
}

// SessionLogin handles POST /login: on success it creates a server-side
// session and sets the session cookie.
func (h *AuthHandler) SessionLogin(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email y password requeridos"})
	}

	user, ok, err := h.checkCredentials(c, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "email o password incorrectos"})
	}

	sid, err := h.Sessions.Create(c.Request().Context(), auth.Identity{
		UsuarioID: user.ID,
		Nombre:    user.Nombre,
		EsAdmin:   user.EsAdmin,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
	}
	h.setSessionCookie(c, sid, time.Duration(h.Cfg.SessionTTLHours)*time.Hour)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// SessionRegister handles POST /registro.
func (h *AuthHandler) SessionRegister(c echo.Context) error {
	user, ok := h.register(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": user})
}

// Logout handles POST /logout: it deletes the server-side session and
// expires the cookie. Logging out without a session is not an error.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.Cfg.SessionCookie); err == nil && cookie.Value != "" {
		_ = h.Sessions.Delete(c.Request().Context(), cookie.Value)
	}
	h.setSessionCookie(c, "", -time.Hour)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// register binds and validates the registration body and creates the
// user. On failure it writes the error response itself and reports false
// so callers just stop.
func (h *AuthHandler) register(c echo.Context) (usuarioResp, bool) {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return usuarioResp{}, false
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nombre == "" || req.Email == "" || req.Password == "" {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre, email y password requeridos"})
		return usuarioResp{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Usuarios.Create(ctx, req.Nombre, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "el email ya esta registrado"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
		return usuarioResp{}, false
	}
	return usuarioResp{ID: uid, Nombre: req.Nombre, Email: req.Email, EsAdmin: false}, true
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
