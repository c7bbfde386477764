package model

import "time"

// Estado values for a turno. The lifecycle is
// esperando -> en_atencion -> completado, with cancelado reachable from
// both non-terminal states. The strings are stored verbatim in the
// `estado` column and exposed unchanged over the wire.
const (
	EstadoEsperando  = "esperando"
	EstadoEnAtencion = "en_atencion"
	EstadoCompletado = "completado"
	EstadoCancelado  = "cancelado"
)

// ValidEstado reports whether s is one of the four lifecycle states.
func ValidEstado(s string) bool {
	switch s {
	case EstadoEsperando, EstadoEnAtencion, EstadoCompletado, EstadoCancelado:
		return true
	}
	return false
}

// Turno is a queued service request as stored in the `turnos` table.
//
// Fields:
//  ID            – primary key identifier.
//  Numero        – sequence number, unique only within its categoria,
//                  monotonically increasing from 1.
//  CategoriaID   – foreign key into categorias.
//  Categoria     – name of the owning categoria, joined on every read.
//  Estado        – one of the Estado* constants above.
//  FechaCreacion – creation timestamp; defines serving order.
//  HoraEstimada  – estimated ready time, fixed at creation and never
//                  recomputed.
//  HoraInicio    – set when service starts (nullable).
//  HoraFin       – set when service completes (nullable).
type Turno struct {
	ID            uint64     // turnos.id
	Numero        int        // turnos.numero
	CategoriaID   uint64     // turnos.categoria_id
	Categoria     string     // categorias.nombre (joined)
	Estado        string     // turnos.estado
	FechaCreacion time.Time  // turnos.fecha_creacion
	HoraEstimada  time.Time  // turnos.hora_estimada
	HoraInicio    *time.Time // turnos.hora_inicio (nullable)
	HoraFin       *time.Time // turnos.hora_fin (nullable)
}
