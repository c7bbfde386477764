package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/service"
)

var (
	adminIdent  = auth.Identity{UsuarioID: 1, Nombre: "Administrador", EsAdmin: true}
	publicIdent = auth.Identity{UsuarioID: 2, Nombre: "Ana"}
)

func newTestAdminHandler() (*AdminHandler, *fakeTurnoStore) {
	cats := &fakeCategoriaStore{cats: []model.Categoria{
		{ID: 1, Nombre: "Atencion General", TiempoEstimado: 15, Activa: true},
	}}
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.Local)
	turnos := &fakeTurnoStore{
		catNames: map[uint64]string{1: "Atencion General"},
		turnos: []model.Turno{
			{ID: 1, Numero: 1, CategoriaID: 1, Estado: model.EstadoEsperando,
				FechaCreacion: now, HoraEstimada: now},
		},
		nextID: 1,
	}
	return NewAdminHandler(service.NewLifecycle(turnos, nil), turnos, cats), turnos
}

func TestIniciar_AsAdmin(t *testing.T) {
	h, turnos := newTestAdminHandler()

	c, rec := jsonRequest(t, http.MethodPost, "/iniciar_turno/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	auth.Store(c, adminIdent)

	require.NoError(t, h.Iniciar(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Turno #1 iniciado", body["mensaje"])
	assert.Equal(t, model.EstadoEnAtencion, turnos.turnos[0].Estado)
	require.NotNil(t, turnos.turnos[0].HoraInicio)
}

func TestCompletar_StampsHoraFin(t *testing.T) {
	h, turnos := newTestAdminHandler()

	c, rec := jsonRequest(t, http.MethodPost, "/completar_turno/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	auth.Store(c, adminIdent)

	require.NoError(t, h.Completar(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.EstadoCompletado, turnos.turnos[0].Estado)
	require.NotNil(t, turnos.turnos[0].HoraFin)
}

func TestTransition_NonAdminIsDenied(t *testing.T) {
	h, turnos := newTestAdminHandler()

	c, rec := jsonRequest(t, http.MethodPost, "/cancelar_turno/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	auth.Store(c, publicIdent)

	require.NoError(t, h.Cancelar(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "acceso denegado", decodeBody(t, rec)["error"])
	// Denied calls leave the turno untouched.
	assert.Equal(t, model.EstadoEsperando, turnos.turnos[0].Estado)
}

func TestTransition_UnknownTurno(t *testing.T) {
	h, _ := newTestAdminHandler()

	c, rec := jsonRequest(t, http.MethodPost, "/iniciar_turno/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	auth.Store(c, adminIdent)

	require.NoError(t, h.Iniciar(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransition_InvalidID(t *testing.T) {
	h, _ := newTestAdminHandler()

	c, rec := jsonRequest(t, http.MethodPost, "/iniciar_turno/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	auth.Store(c, adminIdent)

	require.NoError(t, h.Iniciar(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPanel_GroupsByEstado(t *testing.T) {
	h, turnos := newTestAdminHandler()
	now := time.Date(2026, 3, 9, 9, 30, 0, 0, time.Local)
	turnos.turnos = append(turnos.turnos, model.Turno{
		ID: 2, Numero: 2, CategoriaID: 1, Estado: model.EstadoEnAtencion,
		FechaCreacion: now, HoraEstimada: now,
	})

	c, rec := jsonRequest(t, http.MethodGet, "/panel_admin", nil)
	auth.Store(c, adminIdent)

	require.NoError(t, h.Panel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Len(t, body["turnos_esperando"], 1)
	assert.Len(t, body["turnos_en_atencion"], 1)
	assert.Len(t, body["categorias"], 1)
}
