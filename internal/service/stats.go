package service

import (
	"context"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/model"
)

// Resumen is the daily statistics payload: counts over turnos created on
// the server's current calendar date.
type Resumen struct {
	Total       int `json:"total"`
	Esperando   int `json:"esperando"`
	EnAtencion  int `json:"en_atencion"`
	Completados int `json:"completados"`
	Cancelados  int `json:"cancelados"`
}

// StatsService computes the administrative daily summary.
type StatsService struct {
	Turnos TurnoStore
}

func NewStatsService(turnos TurnoStore) *StatsService { return &StatsService{Turnos: turnos} }

// DailySummary returns today's counts by estado. Restricted to
// administrators; "today" is local midnight to midnight with no timezone
// normalization.
func (s *StatsService) DailySummary(ctx context.Context, ident auth.Identity) (Resumen, error) {
	if !ident.EsAdmin {
		return Resumen{}, ErrPermissionDenied
	}
	counts, err := s.Turnos.CountHoyPorEstado(ctx)
	if err != nil {
		return Resumen{}, err
	}
	r := Resumen{
		Esperando:   counts[model.EstadoEsperando],
		EnAtencion:  counts[model.EstadoEnAtencion],
		Completados: counts[model.EstadoCompletado],
		Cancelados:  counts[model.EstadoCancelado],
	}
	r.Total = r.Esperando + r.EnAtencion + r.Completados + r.Cancelados
	return r, nil
}
