package model

// Categoria represents a service category as stored in the `categorias`
// table. Categories are seeded once at startup and treated as read-only
// by every exposed route; TiempoEstimado is the average handling time
// in minutes used by the queue estimator.
type Categoria struct {
	ID             uint64 // categorias.id
	Nombre         string // categorias.nombre
	Descripcion    string // categorias.descripcion
	TiempoEstimado int    // categorias.tiempo_estimado (minutes)
	Activa         bool   // categorias.activa
}
