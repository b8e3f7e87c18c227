package memory

import (
	"context"
	"testing"
	"time"

	"withings-health-sync/internal/domain/measurements"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(id int64, at time.Time, ms ...measurements.Measurement) measurements.MeasurementGroup {
	return measurements.MeasurementGroup{
		ID:           id,
		MeasuredAt:   at,
		Category:     measurements.CategoryReal,
		Attribution:  measurements.AttributionDeviceEntryForUser,
		Measurements: ms,
	}
}

func TestMeasurementsRepo_UpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementsRepo()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveGroups(ctx, []measurements.MeasurementGroup{
		group(3, base.Add(time.Hour), measurements.Measurement{Type: measurements.TypeWeight, Value: 71}),
		group(2, base, measurements.Measurement{Type: measurements.TypeWeight, Value: 70}),
		group(1, base, measurements.Measurement{Type: measurements.TypeHeight, Value: 1.8}),
	}))
	// upsert del grupo 3
	require.NoError(t, repo.SaveGroups(ctx, []measurements.MeasurementGroup{
		group(3, base.Add(time.Hour), measurements.Measurement{Type: measurements.TypeWeight, Value: 72}),
	}))

	all, err := repo.ListGroups(ctx, measurements.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 72.0, all[2].Measurements[0].Value)

	from := base.Add(30 * time.Minute)
	filtered, err := repo.ListGroups(ctx, measurements.ListFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(3), filtered[0].ID)

	to := base
	filtered, err = repo.ListGroups(ctx, measurements.ListFilter{To: &to})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestMeasurementsRepo_RejectsMissingID(t *testing.T) {
	repo := NewMeasurementsRepo()
	err := repo.SaveGroups(context.Background(), []measurements.MeasurementGroup{group(0, time.Now())})
	assert.Error(t, err)
}

func TestMeasurementsRepo_SaveGroupsIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementsRepo()

	batch := []measurements.MeasurementGroup{
		group(1, time.Unix(100, 0).UTC()),
		group(0, time.Unix(200, 0).UTC()),
		group(3, time.Unix(300, 0).UTC()),
	}
	require.Error(t, repo.SaveGroups(ctx, batch))

	got, err := repo.ListGroups(ctx, measurements.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMeasurementsRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementsRepo()
	dev := "dev-1"
	g := group(1, time.Unix(100, 0).UTC(), measurements.Measurement{Type: measurements.TypeWeight, Value: 70})
	g.DeviceID = &dev
	require.NoError(t, repo.SaveGroups(ctx, []measurements.MeasurementGroup{g}))

	got, err := repo.ListGroups(ctx, measurements.ListFilter{})
	require.NoError(t, err)
	got[0].Measurements[0].Value = 1
	*got[0].DeviceID = "changed"

	again, err := repo.ListGroups(ctx, measurements.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 70.0, again[0].Measurements[0].Value)
	assert.Equal(t, "dev-1", *again[0].DeviceID)
}

func TestMeasurementsRepo_SyncCursor(t *testing.T) {
	ctx := context.Background()
	repo := NewMeasurementsRepo()

	_, ok, err := repo.LastSync(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	require.NoError(t, repo.SetLastSync(ctx, at))

	got, ok, err := repo.LastSync(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Equal(at))
	assert.Equal(t, time.UTC, got.Location())
}
