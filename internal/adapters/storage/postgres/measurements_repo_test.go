package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"withings-health-sync/internal/domain/devices"
	"withings-health-sync/internal/domain/measurements"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Necesita un Postgres real: TEST_DB_DSN=postgres://... go test ./...
func openTestDB(t *testing.T) *MeasurementsRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE measurement_groups, measurements, sync_state`)
	require.NoError(t, err)

	return NewMeasurementsRepo(db)
}

func TestMeasurementsRepo_RoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	dev := "scale-1"
	model := devices.ModelBodyCardio
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveGroups(ctx, []measurements.MeasurementGroup{
		{
			ID: 2, MeasuredAt: base.Add(time.Hour), Category: measurements.CategoryReal,
			Attribution: measurements.AttributionDeviceEntryForUser, DeviceID: &dev, Model: &model,
			Measurements: []measurements.Measurement{
				{Type: measurements.TypeWeight, Value: 72.5},
				{Type: measurements.TypeFatRatio, Value: 18.2},
			},
		},
		{
			ID: 1, MeasuredAt: base, Category: measurements.CategoryReal,
			Attribution: measurements.AttributionManualUserEntry,
			Measurements: []measurements.Measurement{{Type: measurements.TypeHeight, Value: 1.8}},
		},
	}))

	// upsert: reemplaza las medidas del grupo 2
	require.NoError(t, repo.SaveGroups(ctx, []measurements.MeasurementGroup{{
		ID: 2, MeasuredAt: base.Add(time.Hour), Category: measurements.CategoryReal,
		Attribution:  measurements.AttributionDeviceEntryForUser,
		Measurements: []measurements.Measurement{{Type: measurements.TypeWeight, Value: 72}},
	}}))

	groups, err := repo.ListGroups(ctx, measurements.ListFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].ID)
	assert.Nil(t, groups[0].DeviceID)
	assert.Equal(t, int64(2), groups[1].ID)
	assert.Nil(t, groups[1].Model)
	assert.Equal(t, []measurements.Measurement{{Type: measurements.TypeWeight, Value: 72}}, groups[1].Measurements)

	from := base.Add(30 * time.Minute)
	groups, err = repo.ListGroups(ctx, measurements.ListFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(2), groups[0].ID)
}

func TestMeasurementsRepo_SyncCursor(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	_, ok, err := repo.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetLastSync(ctx, at))
	require.NoError(t, repo.SetLastSync(ctx, at.Add(time.Hour)))

	got, ok, err := repo.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(at.Add(time.Hour)))
}
