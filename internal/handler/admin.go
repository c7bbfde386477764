package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/service"
)

// AdminHandler serves the administrative surface: lifecycle transitions
// and the panel feed. The same handler methods are registered under both
// the session group and the bearer-token group; the credential adapter
// on each group resolves the identity, the service applies the gate.
type AdminHandler struct {
	Lifecycle  *service.Lifecycle
	Turnos     service.TurnoStore
	Categorias service.CategoriaStore
}

func NewAdminHandler(lifecycle *service.Lifecycle, turnos service.TurnoStore, categorias service.CategoriaStore) *AdminHandler {
	return &AdminHandler{Lifecycle: lifecycle, Turnos: turnos, Categorias: categorias}
}

// Iniciar handles POST /iniciar_turno/:id and its /api twin.
func (h *AdminHandler) Iniciar(c echo.Context) error {
	return h.transition(c, "iniciado", h.Lifecycle.Iniciar)
}

// Completar handles POST /completar_turno/:id and its /api twin.
func (h *AdminHandler) Completar(c echo.Context) error {
	return h.transition(c, "completado", h.Lifecycle.Completar)
}

// Cancelar handles POST /cancelar_turno/:id and its /api twin.
func (h *AdminHandler) Cancelar(c echo.Context) error {
	return h.transition(c, "cancelado", h.Lifecycle.Cancelar)
}

func (h *AdminHandler) transition(c echo.Context, accion string,
	op func(context.Context, auth.Identity, uint64) (model.Turno, error)) error {

	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turno id"})
	}
	ident, _ := auth.FromContext(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := op(ctx, ident, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "acceso denegado"})
		case errors.Is(err, repository.ErrTurnoNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turno no encontrado"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"mensaje": fmt.Sprintf("Turno #%d %s", t.Numero, accion),
		"turno":   toTurnoResp(t),
	})
}

// Panel handles GET /panel_admin: the data the admin panel renders,
// waiting turnos in serving order, turnos currently in service, and the
// categoria list. Admin access is enforced by middleware on the route.
func (h *AdminHandler) Panel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	esperando, err := h.Turnos.List(ctx, model.EstadoEsperando, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	enAtencion, err := h.Turnos.List(ctx, model.EstadoEnAtencion, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cats, err := h.Categorias.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	catsResp := make([]categoriaResp, 0, len(cats))
	for _, cat := range cats {
		catsResp = append(catsResp, toCategoriaResp(cat))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"turnos_esperando":   toTurnoResps(esperando),
		"turnos_en_atencion": toTurnoResps(enAtencion),
		"categorias":         catsResp,
	})
}
