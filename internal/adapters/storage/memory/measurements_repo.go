package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"withings-health-sync/internal/domain/measurements"
)

type measurementsRepo struct {
	mu       sync.RWMutex
	byID     map[int64]measurements.MeasurementGroup
	lastSync *time.Time
}

func NewMeasurementsRepo() measurements.Repository {
	return &measurementsRepo{
		byID: make(map[int64]measurements.MeasurementGroup),
	}
}

// SaveGroups hace upsert por ID de grupo. Todo o nada, igual que el repo de Postgres.
func (r *measurementsRepo) SaveGroups(ctx context.Context, groups []measurements.MeasurementGroup) error {
	for _, g := range groups {
		if g.ID == 0 {
			return errors.New("measurement group id required")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range groups {
		r.byID[g.ID] = cloneGroup(g)
	}
	return nil
}

func (r *measurementsRepo) ListGroups(ctx context.Context, filter measurements.ListFilter) ([]measurements.MeasurementGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]measurements.MeasurementGroup, 0, len(r.byID))
	for _, g := range r.byID {
		if filter.From != nil && g.MeasuredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && g.MeasuredAt.After(*filter.To) {
			continue
		}
		out = append(out, cloneGroup(g))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].MeasuredAt.Equal(out[j].MeasuredAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].MeasuredAt.Before(out[j].MeasuredAt)
	})
	return out, nil
}

func (r *measurementsRepo) LastSync(ctx context.Context) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lastSync == nil {
		return time.Time{}, false, nil
	}
	return *r.lastSync, true, nil
}

func (r *measurementsRepo) SetLastSync(ctx context.Context, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := at.UTC()
	r.lastSync = &t
	return nil
}

// cloneGroup evita compartir slices/punteros con quien llama.
func cloneGroup(g measurements.MeasurementGroup) measurements.MeasurementGroup {
	c := g
	c.Measurements = append([]measurements.Measurement(nil), g.Measurements...)
	if g.DeviceID != nil {
		id := *g.DeviceID
		c.DeviceID = &id
	}
	if g.Model != nil {
		m := *g.Model
		c.Model = &m
	}
	return c
}
