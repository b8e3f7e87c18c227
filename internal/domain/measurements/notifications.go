package measurements

import (
	"errors"

	"withings-health-sync/internal/domain/decode"
)

var ErrUnsupportedNotificationCategory = errors.New("unsupported notification category")

// NotificationCategory es el "appli" de las notificaciones de Withings
// que reportan medidas.
type NotificationCategory int

const (
	NotificationCategoryWeight      NotificationCategory = 1
	NotificationCategoryTemperature NotificationCategory = 2
	NotificationCategoryPressure    NotificationCategory = 4
)

var notificationMeasurementTypes = map[NotificationCategory][]MeasurementType{
	NotificationCategoryWeight: {
		TypeWeight,
		TypeFatFreeMass,
		TypeFatRatio,
		TypeFatMassWeight,
		TypeMuscleMass,
		TypeHydration,
		TypeBoneMass,
		TypePulseWaveVelocity,
		TypeVascularAge,
		TypeNerveHealthScoreConductance,
		TypeExtracellularWater,
		TypeIntracellularWater,
		TypeVisceralFat,
		TypeFatFreeMassForSegments,
		TypeFatMassForSegments,
		TypeMuscleMassForSegments,
		TypeElectrodermalActivityFeet,
		TypeElectrodermalActivityLeftFoot,
		TypeElectrodermalActivityRightFoot,
		TypeBasalMetabolicRate,
		TypeMetabolicAge,
		TypeElectrochemicalSkinConductance,
	},
	NotificationCategoryTemperature: {
		TypeTemperature,
		TypeBodyTemperature,
		TypeSkinTemperature,
	},
	NotificationCategoryPressure: {
		TypeDiastolicBloodPressure,
		TypeSystolicBloodPressure,
		TypeHeartRate,
		TypeSpO2,
	},
}

func ParseNotificationCategory(code int) (NotificationCategory, error) {
	c := NotificationCategory(code)
	if _, ok := notificationMeasurementTypes[c]; !ok {
		return 0, decode.UnknownCode("appli", "notification category", code)
	}
	return c, nil
}

func NotificationCategories() []NotificationCategory {
	return []NotificationCategory{
		NotificationCategoryWeight,
		NotificationCategoryTemperature,
		NotificationCategoryPressure,
	}
}

func (c NotificationCategory) String() string {
	switch c {
	case NotificationCategoryWeight:
		return "weight"
	case NotificationCategoryTemperature:
		return "temperature"
	case NotificationCategoryPressure:
		return "pressure"
	default:
		return "unknown"
	}
}

// MeasurementTypesForNotification devuelve una copia ordenada por código.
func MeasurementTypesForNotification(c NotificationCategory) ([]MeasurementType, error) {
	types, ok := notificationMeasurementTypes[c]
	if !ok {
		return nil, ErrUnsupportedNotificationCategory
	}
	out := make([]MeasurementType, len(types))
	copy(out, types)
	sortTypes(out)
	return out, nil
}
