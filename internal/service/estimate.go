package service

import (
	"time"

	"github.com/jmvillar/turnero/internal/model"
)

// EstimateReady computes the estimated ready time for a new turno:
// now plus one full handling slot for every turno already waiting in the
// same categoria. With zero waiting turnos the estimate equals now. The
// result is fixed at creation and never recomputed, even when earlier
// turnos are cancelled.
func EstimateReady(now time.Time, waiting int, categoria model.Categoria) time.Time {
	if waiting <= 0 {
		return now
	}
	return now.Add(time.Duration(waiting*categoria.TiempoEstimado) * time.Minute)
}
