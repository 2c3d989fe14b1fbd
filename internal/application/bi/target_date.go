package bi

import (
	"fmt"
	"time"

	"github.com/jhoicas/cosecha-api/internal/domain"
	"github.com/jhoicas/cosecha-api/internal/domain/repository"
)

// El día de reparto es jueves; las fechas fuera de temporada se ajustan al
// jueves de reparto más cercano dentro de la ventana.
const deliveryWeekday = time.Thursday

// TargetDateResolver calcula la fecha objetivo por defecto de los cálculos
// cuando el caller no indica una fecha de interés explícita.
type TargetDateResolver struct {
	configs repository.RequisitionConfigRepository
	now     func() time.Time
}

// NewTargetDateResolver construye el resolutor. now permite inyectar el reloj
// en tests; nil usa time.Now.
func NewTargetDateResolver(configs repository.RequisitionConfigRepository, now func() time.Time) *TargetDateResolver {
	if now == nil {
		now = time.Now
	}
	return &TargetDateResolver{configs: configs, now: now}
}

// Resolve devuelve la fecha objetivo de una temporada: ahora, acotado a la
// ventana de la temporada. Antes del inicio devuelve el jueves igual o
// siguiente al inicio; después del fin, el jueves igual o anterior al fin.
func (r *TargetDateResolver) Resolve(configID string) (time.Time, error) {
	config, err := r.configs.GetByID(configID)
	if err != nil {
		return time.Time{}, fmt.Errorf("cargar temporada %s: %w", configID, err)
	}
	if config == nil {
		return time.Time{}, fmt.Errorf("temporada %s: %w", configID, domain.ErrConfigNotFound)
	}
	now := r.now()
	if now.Before(config.ValidFrom) {
		return sameOrNextWeekday(config.ValidFrom, deliveryWeekday), nil
	}
	if now.After(config.ValidTo) {
		return sameOrPreviousWeekday(config.ValidTo, deliveryWeekday), nil
	}
	return now, nil
}

func sameOrNextWeekday(t time.Time, day time.Weekday) time.Time {
	delta := (int(day) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, delta)
}

func sameOrPreviousWeekday(t time.Time, day time.Weekday) time.Time {
	delta := (int(t.Weekday()) - int(day) + 7) % 7
	return t.AddDate(0, 0, -delta)
}
