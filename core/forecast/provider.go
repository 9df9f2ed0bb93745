package forecast

import (
	"context"
	"time"

	"github.com/solbatt/solbatt/core/model"
)

// Provider returns one ForecastPoint per timeslot for a horizon starting at
// start. Implementations must return exactly slots entries or an error.
type Provider interface {
	Forecast(ctx context.Context, start time.Time, slots int, slotDur time.Duration) ([]model.ForecastPoint, error)
}

// SnapToSlot rounds t down to the nearest slot boundary.
func SnapToSlot(t time.Time, slotDur time.Duration) time.Time {
	return t.Truncate(slotDur)
}
