package measurements

import (
	"errors"
	"testing"
	"time"

	"withings-health-sync/internal/domain/decode"
	"withings-health-sync/internal/domain/devices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementTypes_RoundTrip(t *testing.T) {
	all := MeasurementTypes()
	require.Len(t, all, 37)

	for _, mt := range all {
		got, err := ParseMeasurementType(mt.Code())
		require.NoError(t, err)
		assert.Equal(t, mt, got)

		byName, ok := ParseMeasurementTypeName(mt.String())
		require.True(t, ok, mt.String())
		assert.Equal(t, mt, byName)
	}
	assert.Equal(t, TypeWeight, all[0])
	assert.Equal(t, TypeElectrochemicalSkinConductance, all[len(all)-1])
}

func TestParse_UnknownCodesFailWithField(t *testing.T) {
	cases := []struct {
		field string
		parse func() error
	}{
		{"type", func() error { _, err := ParseMeasurementType(999); return err }},
		{"category", func() error { _, err := ParseCategory(3); return err }},
		{"attrib", func() error { _, err := ParseAttribution(3); return err }},
		{"appli", func() error { _, err := ParseNotificationCategory(16); return err }},
	}

	for _, tc := range cases {
		err := tc.parse()
		require.Error(t, err, tc.field)
		assert.ErrorIs(t, err, decode.ErrUnknownCode)

		var de *decode.Error
		require.True(t, errors.As(err, &de))
		assert.Equal(t, tc.field, de.Field)
	}
}

func TestMeasurementGroupFromAPI(t *testing.T) {
	dev := "abc"
	model := 5
	raw := APIMeasurementGroup{
		GroupID:     42,
		Attribution: 0,
		Date:        1700000000,
		Category:    1,
		DeviceID:    &dev,
		Model:       &model,
		Measures: []APIMeasurement{
			{Type: 4, Value: 180, Unit: -2},
			{Type: 1, Value: 7250, Unit: -2},
			{Type: 11, Value: 62, Unit: 0},
		},
	}

	g, err := MeasurementGroupFromAPI(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), g.ID)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), g.MeasuredAt)
	assert.Equal(t, CategoryReal, g.Category)
	assert.Equal(t, AttributionDeviceEntryForUser, g.Attribution)
	require.NotNil(t, g.Model)
	assert.Equal(t, devices.ModelBodyPlus, *g.Model)

	// el orden del payload se conserva
	assert.Equal(t, []Measurement{
		{Type: TypeHeight, Value: 1.8},
		{Type: TypeWeight, Value: 72.5},
		{Type: TypeHeartRate, Value: 62},
	}, g.Measurements)

	// la copia no comparte el deviceid del payload
	dev = "changed"
	assert.Equal(t, "abc", *g.DeviceID)
}

func TestMeasurementGroupFromAPI_OptionalFields(t *testing.T) {
	g, err := MeasurementGroupFromAPI(APIMeasurementGroup{GroupID: 1, Date: 1, Category: 2, Attribution: 2})
	require.NoError(t, err)
	assert.Nil(t, g.DeviceID)
	assert.Nil(t, g.Model)
	assert.Empty(t, g.Measurements)
	assert.Equal(t, CategoryUserObjectives, g.Category)
}

func TestGroupsFromAPI_ReportsPosition(t *testing.T) {
	model := 9999
	_, err := GroupsFromAPI([]APIMeasurementGroup{
		{GroupID: 1, Date: 1, Category: 1},
		{GroupID: 2, Date: 1, Category: 1, Model: &model},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measuregrps[1]")

	var de *decode.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "model", de.Field)

	_, err = GroupsFromAPI([]APIMeasurementGroup{
		{GroupID: 1, Date: 1, Category: 1, Measures: []APIMeasurement{{Type: 1}, {Type: 2}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measuregrps[0]: measures[1]")
}
