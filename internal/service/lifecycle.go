package service

import (
	"context"
	"strings"
	"time"

	"github.com/jmvillar/turnero/internal/auth"
	"github.com/jmvillar/turnero/internal/model"
	"github.com/jmvillar/turnero/internal/monitoring"
	"github.com/jmvillar/turnero/internal/queue"
)

// Lifecycle advances turnos through their state machine:
//
//	esperando   --iniciar-->   en_atencion --completar--> completado
//	esperando   --cancelar-->  cancelado
//	en_atencion --cancelar-->  cancelado
//
// All three operations require an administrator identity and touch
// nothing when the caller is not one. The current estado is overwritten
// unconditionally, matching the observed behavior of the system this
// replaces; whether transitions out of terminal states should be blocked
// is tracked as an open question in DESIGN.md.
type Lifecycle struct {
	Turnos TurnoStore
	Events EventPublisher // may be nil when no broker is configured
	Now    func() time.Time
}

func NewLifecycle(turnos TurnoStore, events EventPublisher) *Lifecycle {
	return &Lifecycle{Turnos: turnos, Events: events, Now: time.Now}
}

// Iniciar moves the turno to en_atencion and stamps hora_inicio.
func (l *Lifecycle) Iniciar(ctx context.Context, ident auth.Identity, id uint64) (model.Turno, error) {
	t, err := l.authorize(ctx, ident, id)
	if err != nil {
		return model.Turno{}, err
	}
	at := l.Now()
	if err := l.Turnos.Iniciar(ctx, id, at); err != nil {
		return model.Turno{}, err
	}
	t.Estado = model.EstadoEnAtencion
	t.HoraInicio = &at
	l.record(ctx, queue.EventoIniciado, t)
	return t, nil
}

// Completar moves the turno to completado and stamps hora_fin.
func (l *Lifecycle) Completar(ctx context.Context, ident auth.Identity, id uint64) (model.Turno, error) {
	t, err := l.authorize(ctx, ident, id)
	if err != nil {
		return model.Turno{}, err
	}
	at := l.Now()
	if err := l.Turnos.Completar(ctx, id, at); err != nil {
		return model.Turno{}, err
	}
	t.Estado = model.EstadoCompletado
	t.HoraFin = &at
	l.record(ctx, queue.EventoCompletado, t)
	return t, nil
}

// Cancelar moves the turno to cancelado. No timestamp is recorded.
func (l *Lifecycle) Cancelar(ctx context.Context, ident auth.Identity, id uint64) (model.Turno, error) {
	t, err := l.authorize(ctx, ident, id)
	if err != nil {
		return model.Turno{}, err
	}
	if err := l.Turnos.Cancelar(ctx, id); err != nil {
		return model.Turno{}, err
	}
	t.Estado = model.EstadoCancelado
	l.record(ctx, queue.EventoCancelado, t)
	return t, nil
}

// authorize applies the access gate and loads the target turno. The
// permission check runs first so a non-admin caller learns nothing about
// which ids exist.
func (l *Lifecycle) authorize(ctx context.Context, ident auth.Identity, id uint64) (model.Turno, error) {
	if !ident.EsAdmin {
		return model.Turno{}, ErrPermissionDenied
	}
	return l.Turnos.GetByID(ctx, id)
}

// record emits the metrics counter and the broker event for a completed
// transition. tipo is one of the queue.Evento* constants; the metrics
// label is its bare accion.
func (l *Lifecycle) record(ctx context.Context, tipo string, t model.Turno) {
	monitoring.TurnoTransicion(strings.TrimPrefix(tipo, "turno."))
	if l.Events == nil {
		return
	}
	_ = l.Events.Publish(ctx, queue.TurnoEvent{
		Tipo:        tipo,
		TurnoID:     t.ID,
		Numero:      t.Numero,
		CategoriaID: t.CategoriaID,
		Categoria:   t.Categoria,
		Estado:      t.Estado,
		Ocurrido:    l.Now().Format(time.RFC3339),
	})
}
