package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jmvillar/turnero/internal/model"
)

// turnoResp is the wire shape of a turno, shared by every endpoint that
// returns one. Field names match the original system's JSON contract.
type turnoResp struct {
	ID            uint64     `json:"id"`
	Numero        int        `json:"numero"`
	CategoriaID   uint64     `json:"categoria_id"`
	Categoria     string     `json:"categoria"`
	Estado        string     `json:"estado"`
	FechaCreacion time.Time  `json:"fecha_creacion"`
	HoraEstimada  time.Time  `json:"hora_estimada"`
	HoraInicio    *time.Time `json:"hora_inicio"`
	HoraFin       *time.Time `json:"hora_fin"`
}

func toTurnoResp(t model.Turno) turnoResp {
	return turnoResp{
		ID:            t.ID,
		Numero:        t.Numero,
		CategoriaID:   t.CategoriaID,
		Categoria:     t.Categoria,
		Estado:        t.Estado,
		FechaCreacion: t.FechaCreacion,
		HoraEstimada:  t.HoraEstimada,
		HoraInicio:    t.HoraInicio,
		HoraFin:       t.HoraFin,
	}
}

func toTurnoResps(ts []model.Turno) []turnoResp {
	out := make([]turnoResp, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTurnoResp(t))
	}
	return out
}

// categoriaResp is the public shape of a categoria.
type categoriaResp struct {
	ID             uint64 `json:"id"`
	Nombre         string `json:"nombre"`
	Descripcion    string `json:"descripcion"`
	TiempoEstimado int    `json:"tiempo_estimado"`
}

func toCategoriaResp(c model.Categoria) categoriaResp {
	return categoriaResp{
		ID:             c.ID,
		Nombre:         c.Nombre,
		Descripcion:    c.Descripcion,
		TiempoEstimado: c.TiempoEstimado,
	}
}

// usuarioResp is the public shape of a user, returned by the auth
// endpoints. The password hash never leaves the repository layer
// unserialized.
type usuarioResp struct {
	ID      uint64 `json:"id"`
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	EsAdmin bool   `json:"es_admin"`
}

func toUsuarioResp(u model.Usuario) usuarioResp {
	return usuarioResp{ID: u.ID, Nombre: u.Nombre, Email: u.Email, EsAdmin: u.EsAdmin}
}

// paramID parses the numeric :id path parameter.
func paramID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
