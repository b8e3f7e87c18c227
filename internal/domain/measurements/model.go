package measurements

import (
	"fmt"
	"time"

	"withings-health-sync/internal/domain/decode"
	"withings-health-sync/internal/domain/devices"
)

// APIMeasurement es una entrada cruda de "measures".
type APIMeasurement struct {
	Type  int   `json:"type"`
	Value int64 `json:"value"`
	Unit  int   `json:"unit"`
}

// APIMeasurementGroup es una entrada cruda de "measuregrps".
type APIMeasurementGroup struct {
	GroupID     int64            `json:"grpid"`
	Attribution int              `json:"attrib"`
	Date        int64            `json:"date"`
	Category    int              `json:"category"`
	DeviceID    *string          `json:"deviceid"`
	Model       *int             `json:"model"`
	Measures    []APIMeasurement `json:"measures"`
}

type Measurement struct {
	Type  MeasurementType
	Value float64
}

func MeasurementFromAPI(raw APIMeasurement) (Measurement, error) {
	t, err := ParseMeasurementType(raw.Type)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		Type:  t,
		Value: decode.Value(raw.Value, raw.Unit),
	}, nil
}

// MeasurementGroup se construye solo desde el payload y no se modifica después.
// DeviceID y Model son nil cuando Withings no los envía.
type MeasurementGroup struct {
	ID           int64
	MeasuredAt   time.Time
	Category     Category
	Attribution  Attribution
	DeviceID     *string
	Model        *devices.Model
	Measurements []Measurement
}

func MeasurementGroupFromAPI(raw APIMeasurementGroup) (MeasurementGroup, error) {
	category, err := ParseCategory(raw.Category)
	if err != nil {
		return MeasurementGroup{}, err
	}
	attribution, err := ParseAttribution(raw.Attribution)
	if err != nil {
		return MeasurementGroup{}, err
	}

	g := MeasurementGroup{
		ID:           raw.GroupID,
		MeasuredAt:   time.Unix(raw.Date, 0).UTC(),
		Category:     category,
		Attribution:  attribution,
		Measurements: make([]Measurement, 0, len(raw.Measures)),
	}

	if raw.DeviceID != nil {
		id := *raw.DeviceID
		g.DeviceID = &id
	}
	if raw.Model != nil {
		m, err := devices.ParseModel("model", *raw.Model)
		if err != nil {
			return MeasurementGroup{}, err
		}
		g.Model = &m
	}

	// mismo orden que envía Withings
	for i, rm := range raw.Measures {
		m, err := MeasurementFromAPI(rm)
		if err != nil {
			return MeasurementGroup{}, fmt.Errorf("measures[%d]: %w", i, err)
		}
		g.Measurements = append(g.Measurements, m)
	}

	return g, nil
}

// GroupsFromAPI convierte la lista completa; falla en el primer grupo inválido.
func GroupsFromAPI(raws []APIMeasurementGroup) ([]MeasurementGroup, error) {
	out := make([]MeasurementGroup, 0, len(raws))
	for i, raw := range raws {
		g, err := MeasurementGroupFromAPI(raw)
		if err != nil {
			return nil, fmt.Errorf("measuregrps[%d]: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}
