package measurements

import (
	"context"
	"time"
)

// Repository guarda los grupos sincronizados y el cursor de lastupdate.
// ListGroups devuelve los grupos ordenados por MeasuredAt asc y luego ID asc.
type Repository interface {
	SaveGroups(ctx context.Context, groups []MeasurementGroup) error
	ListGroups(ctx context.Context, filter ListFilter) ([]MeasurementGroup, error)
	LastSync(ctx context.Context) (time.Time, bool, error)
	SetLastSync(ctx context.Context, at time.Time) error
}

type ListFilter struct {
	From *time.Time
	To   *time.Time
}

// Source es el puerto hacia la API de medidas de Withings.
type Source interface {
	GetMeasurementSince(ctx context.Context, since time.Time, types []MeasurementType) ([]MeasurementGroup, error)
	GetMeasurementInPeriod(ctx context.Context, start, end time.Time, types []MeasurementType) ([]MeasurementGroup, error)
}
