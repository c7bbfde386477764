package service

import (
	"context"
	"time"

	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/monitoring"
	"github.com/jmvillar/turnero/internal/queue"
	"github.com/jmvillar/turnero/internal/repository"
)

// EventPublisher pushes turno lifecycle events to the message broker.
// Publishing is best effort: errors are logged by the implementation and
// never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.TurnoEvent) error
}

// TurnoService creates and reads turnos. Creation assigns the next
// per-categoria sequence number and a fixed estimated ready time.
type TurnoService struct {
	Categorias CategoriaStore
	Turnos     TurnoStore
	Events     EventPublisher // may be nil when no broker is configured
	Now        func() time.Time
}

func NewTurnoService(categorias CategoriaStore, turnos TurnoStore, events EventPublisher) *TurnoService {
	return &TurnoService{Categorias: categorias, Turnos: turnos, Events: events, Now: time.Now}
}

// Create issues a new turno for the given categoria. The sequence number
// is max(numero)+1 within the categoria and the estimate counts only
// turnos already waiting ahead of this one. Returns
// repository.ErrCategoriaNotFound for an unknown categoria.
func (s *TurnoService) Create(ctx context.Context, categoriaID uint64) (model.Turno, error) {
	cat, err := s.Categorias.GetByID(ctx, categoriaID)
	if err != nil {
		return model.Turno{}, err
	}
	numero, err := s.Turnos.NextNumero(ctx, categoriaID)
	if err != nil {
		return model.Turno{}, err
	}
	waiting, err := s.Turnos.CountWaiting(ctx, categoriaID)
	if err != nil {
		return model.Turno{}, err
	}
	now := s.Now()
	t := model.Turno{
		Numero:        numero,
		CategoriaID:   categoriaID,
		Categoria:     cat.Nombre,
		Estado:        model.EstadoEsperando,
		FechaCreacion: now,
		HoraEstimada:  EstimateReady(now, waiting, cat),
	}
	if err := s.Turnos.Insert(ctx, &t); err != nil {
		return model.Turno{}, err
	}
	monitoring.TurnoCreado(cat.Nombre)
	s.publish(ctx, queue.TurnoEvent{
		Tipo:        queue.EventoCreado,
		TurnoID:     t.ID,
		Numero:      t.Numero,
		CategoriaID: categoriaID,
		Categoria:   cat.Nombre,
		Estado:      t.Estado,
		Ocurrido:    now.Format(time.RFC3339),
	})
	return t, nil
}

// Get returns one turno or repository.ErrTurnoNotFound.
func (s *TurnoService) Get(ctx context.Context, id uint64) (model.Turno, error) {
	return s.Turnos.GetByID(ctx, id)
}

// List returns turnos filtered by optional estado and categoria, oldest
// first.
func (s *TurnoService) List(ctx context.Context, estado string, categoriaID uint64) ([]model.Turno, error) {
	return s.Turnos.List(ctx, estado, categoriaID)
}

// Board returns the public waiting board: waiting turnos with their
// categoria names in serving order.
func (s *TurnoService) Board(ctx context.Context) ([]repository.BoardEntry, error) {
	return s.Turnos.ListEsperandoBoard(ctx)
}

func (s *TurnoService) publish(ctx context.Context, ev queue.TurnoEvent) {
	if s.Events == nil {
		return
	}
	_ = s.Events.Publish(ctx, ev)
}
