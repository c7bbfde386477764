package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	turnosCreados = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turnero_turnos_creados_total",
			Help: "Turnos created, per categoria",
		},
		[]string{"categoria"},
	)

	turnoTransiciones = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "turnero_turno_transiciones_total",
			Help: "Lifecycle transitions applied to turnos",
		},
		[]string{"accion"},
	)
)

// TurnoCreado records the creation of a turno in the given categoria.
func TurnoCreado(categoria string) {
	turnosCreados.WithLabelValues(categoria).Inc()
}

// TurnoTransicion records a lifecycle transition (iniciado, completado,
// cancelado).
func TurnoTransicion(accion string) {
	turnoTransiciones.WithLabelValues(accion).Inc()
}

// Handler exposes the default Prometheus registry, mounted at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
