package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/service"
)

// TurnoHandler serves turno creation and the public read endpoints. Both
// are open to anonymous callers.
type TurnoHandler struct {
	Turnos *service.TurnoService
}

func NewTurnoHandler(turnos *service.TurnoService) *TurnoHandler {
	return &TurnoHandler{Turnos: turnos}
}

type crearTurnoReq struct {
	CategoriaID uint64 `json:"categoria_id"`
}

// Crear handles POST /api/turnos.
func (h *TurnoHandler) Crear(c echo.Context) error {
	var req crearTurnoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CategoriaID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoria_id requerido"})
	}
	return h.create(c, req.CategoriaID)
}

// SacarTurno handles POST /sacar_turno, the form-encoded variant kept
// for the kiosk front end. Same semantics as Crear.
func (h *TurnoHandler) SacarTurno(c echo.Context) error {
	raw := c.FormValue("categoria_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "categoria_id requerido"})
	}
	return h.create(c, id)
}

func (h *TurnoHandler) create(c echo.Context, categoriaID uint64) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Turnos.Create(ctx, categoriaID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoriaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "categoria no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"mensaje": fmt.Sprintf("Turno #%d generado exitosamente. Hora estimada: %s", t.Numero, t.HoraEstimada.Format("15:04")),
		"turno":   toTurnoResp(t),
	})
}

// Get handles GET /api/turnos/:id.
func (h *TurnoHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid turno id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Turnos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTurnoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "turno no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTurnoResp(t))
}

// List handles GET /api/turnos?estado=&categoria_id=. Empty filters
// return every turno, ordered oldest first.
func (h *TurnoHandler) List(c echo.Context) error {
	estado := c.QueryParam("estado")
	if estado != "" && !model.ValidEstado(estado) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado invalido"})
	}
	var categoriaID uint64
	if raw := c.QueryParam("categoria_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoria_id"})
		}
		categoriaID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ts, err := h.Turnos.List(ctx, estado, categoriaID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTurnoResps(ts))
}

// Esperando handles GET /api/turnos_esperando, the legacy waiting-board
// feed: waiting turnos with categoria name, estimate formatted HH:MM.
func (h *TurnoHandler) Esperando(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Turnos.Board(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	type boardResp struct {
		ID           uint64  `json:"id"`
		Numero       int     `json:"numero"`
		Categoria    string  `json:"categoria"`
		HoraEstimada *string `json:"hora_estimada"`
	}
	out := make([]boardResp, 0, len(entries))
	for _, e := range entries {
		r := boardResp{ID: e.ID, Numero: e.Numero, Categoria: e.Categoria}
		if e.HoraEstimada != nil {
			hhmm := e.HoraEstimada.Format("15:04")
			r.HoraEstimada = &hhmm
		}
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, out)
}
