package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/repository"
	"github.com/jmvillar/turnero/internal/service"
)

// CategoriaHandler serves the public categoria listing. Categories are
// seeded at startup and read-only, so there are no mutating endpoints.
type CategoriaHandler struct {
	Categorias service.CategoriaStore
}

func NewCategoriaHandler(categorias service.CategoriaStore) *CategoriaHandler {
	return &CategoriaHandler{Categorias: categorias}
}

// List handles GET /api/categorias.
func (h *CategoriaHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categorias.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]categoriaResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoriaResp(cat))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/categorias/:id.
func (h *CategoriaHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoria id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categorias.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoriaNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "categoria no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toCategoriaResp(cat))
}
