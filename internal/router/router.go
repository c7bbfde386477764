package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/config"
	"github.com/jmvillar/turnero/internal/handler"
	"github.com/jmvillar/turnero/internal/middleware"
	"github.com/jmvillar/turnero/internal/monitoring"
	"github.com/jmvillar/turnero/internal/session"
)

// RegisterRoutes registers the operational endpoints: health check and
// Prometheus metrics.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(monitoring.Handler()))
}

// RegisterPublic registers the endpoints open to any caller: categoria
// listing, turno creation and the read-only turno feeds. The limiter is
// the Redis token bucket; it degrades to a pass-through when Redis is
// not available.
func RegisterPublic(e *echo.Echo, th *handler.TurnoHandler, ch *handler.CategoriaHandler, limiter echo.MiddlewareFunc) {
	api := e.Group("/api", limiter)
	api.GET("/categorias", ch.List)
	api.GET("/categorias/:id", ch.Get)
	api.POST("/turnos", th.Crear)
	api.GET("/turnos", th.List)
	api.GET("/turnos/:id", th.Get)
	api.GET("/turnos_esperando", th.Esperando)

	// Form-encoded creation endpoint kept for the kiosk front end.
	e.POST("/sacar_turno", th.SacarTurno, limiter)
}

// RegisterSession registers the cookie-session surface: login, register,
// logout, the admin panel feed and the session variants of the lifecycle
// endpoints. Everything behind SessionAuth carries a resolved identity;
// the lifecycle service rejects non-admins on top of that.
func RegisterSession(e *echo.Echo, cfg config.Config, ah *handler.AuthHandler, admin *handler.AdminHandler, store *session.Store) {
	e.POST("/login", ah.SessionLogin)
	e.POST("/registro", ah.SessionRegister)
	e.POST("/logout", ah.Logout)

	g := e.Group("", middleware.SessionAuth(store, cfg.SessionCookie))
	g.GET("/panel_admin", admin.Panel, middleware.RequireAdmin())
	g.POST("/iniciar_turno/:id", admin.Iniciar)
	g.POST("/completar_turno/:id", admin.Completar)
	g.POST("/cancelar_turno/:id", admin.Cancelar)
}

// RegisterToken registers the bearer-token surface: the token issuing
// endpoints and the /api twins of the administrative endpoints. The same
// AdminHandler methods serve both surfaces; only the credential adapter
// differs.
func RegisterToken(e *echo.Echo, cfg config.Config, usuarios middleware.UsuarioLoader,
	ah *handler.AuthHandler, admin *handler.AdminHandler, stats *handler.StatsHandler) {

	a := e.Group("/api/auth")
	a.POST("/login", ah.APILogin)
	a.POST("/register", ah.APIRegister)

	bearer := middleware.BearerAuth(cfg.JWTSecret, usuarios)
	a.GET("/me", ah.Me, bearer)

	g := e.Group("/api", bearer)
	g.POST("/iniciar_turno/:id", admin.Iniciar)
	g.POST("/completar_turno/:id", admin.Completar)
	g.POST("/cancelar_turno/:id", admin.Cancelar)
	g.GET("/estadisticas", stats.Estadisticas)
}
