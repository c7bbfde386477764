// Package queue defines the turno event payloads exchanged over the
// message broker, the best-effort publisher and the background consumer.
package queue

// Event types published to the turno.eventos queue.
const (
	EventoCreado     = "turno.creado"
	EventoIniciado   = "turno.iniciado"
	EventoCompletado = "turno.completado"
	EventoCancelado  = "turno.cancelado"
)

// TurnoEvent is emitted whenever a turno is created or changes state. It
// carries enough information for downstream consumers to log or trigger
// analytics without querying the primary database.
type TurnoEvent struct {
	Tipo        string `json:"tipo"`
	TurnoID     uint64 `json:"turno_id"`
	Numero      int    `json:"numero"`
	CategoriaID uint64 `json:"categoria_id"`
	Categoria   string `json:"categoria,omitempty"`
	Estado      string `json:"estado"`
	Ocurrido    string `json:"ocurrido"`
}
