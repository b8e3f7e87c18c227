package measurements

import "withings-health-sync/internal/domain/decode"

// MeasurementType es el código "type" de Withings (meastype).
type MeasurementType int

const (
	TypeWeight                         MeasurementType = 1
	TypeHeight                         MeasurementType = 4
	TypeFatFreeMass                    MeasurementType = 5
	TypeFatRatio                       MeasurementType = 6
	TypeFatMassWeight                  MeasurementType = 8
	TypeDiastolicBloodPressure         MeasurementType = 9
	TypeSystolicBloodPressure          MeasurementType = 10
	TypeHeartRate                      MeasurementType = 11
	TypeTemperature                    MeasurementType = 12
	TypeSpO2                           MeasurementType = 54
	TypeBodyTemperature                MeasurementType = 71
	TypeSkinTemperature                MeasurementType = 73
	TypeMuscleMass                     MeasurementType = 76
	TypeHydration                      MeasurementType = 77
	TypeBoneMass                       MeasurementType = 88
	TypePulseWaveVelocity              MeasurementType = 91
	TypeVO2Max                         MeasurementType = 123
	TypeAtrialFibrillation             MeasurementType = 130
	TypeQRSInterval                    MeasurementType = 135
	TypePRInterval                     MeasurementType = 136
	TypeQTInterval                     MeasurementType = 137
	TypeCorrectedQTInterval            MeasurementType = 138
	TypeAtrialFibrillationPPG          MeasurementType = 139
	TypeVascularAge                    MeasurementType = 155
	TypeNerveHealthScoreConductance    MeasurementType = 167
	TypeExtracellularWater             MeasurementType = 168
	TypeIntracellularWater             MeasurementType = 169
	TypeVisceralFat                    MeasurementType = 170
	TypeFatFreeMassForSegments         MeasurementType = 173
	TypeFatMassForSegments             MeasurementType = 174
	TypeMuscleMassForSegments          MeasurementType = 175
	TypeElectrodermalActivityFeet      MeasurementType = 196
	TypeElectrodermalActivityLeftFoot  MeasurementType = 197
	TypeElectrodermalActivityRightFoot MeasurementType = 198
	TypeBasalMetabolicRate             MeasurementType = 226
	TypeMetabolicAge                   MeasurementType = 227
	TypeElectrochemicalSkinConductance MeasurementType = 229
)

var measurementTypeNames = map[MeasurementType]string{
	TypeWeight:                         "weight",
	TypeHeight:                         "height",
	TypeFatFreeMass:                    "fat_free_mass",
	TypeFatRatio:                       "fat_ratio",
	TypeFatMassWeight:                  "fat_mass_weight",
	TypeDiastolicBloodPressure:         "diastolic_blood_pressure",
	TypeSystolicBloodPressure:          "systolic_blood_pressure",
	TypeHeartRate:                      "heart_rate",
	TypeTemperature:                    "temperature",
	TypeSpO2:                           "spo2",
	TypeBodyTemperature:                "body_temperature",
	TypeSkinTemperature:                "skin_temperature",
	TypeMuscleMass:                     "muscle_mass",
	TypeHydration:                      "hydration",
	TypeBoneMass:                       "bone_mass",
	TypePulseWaveVelocity:              "pulse_wave_velocity",
	TypeVO2Max:                         "vo2_max",
	TypeAtrialFibrillation:             "atrial_fibrillation",
	TypeQRSInterval:                    "qrs_interval",
	TypePRInterval:                     "pr_interval",
	TypeQTInterval:                     "qt_interval",
	TypeCorrectedQTInterval:            "corrected_qt_interval",
	TypeAtrialFibrillationPPG:          "atrial_fibrillation_ppg",
	TypeVascularAge:                    "vascular_age",
	TypeNerveHealthScoreConductance:    "nerve_health_score_conductance",
	TypeExtracellularWater:             "extracellular_water",
	TypeIntracellularWater:             "intracellular_water",
	TypeVisceralFat:                    "visceral_fat",
	TypeFatFreeMassForSegments:         "fat_free_mass_for_segments",
	TypeFatMassForSegments:             "fat_mass_for_segments",
	TypeMuscleMassForSegments:          "muscle_mass_for_segments",
	TypeElectrodermalActivityFeet:      "electrodermal_activity_feet",
	TypeElectrodermalActivityLeftFoot:  "electrodermal_activity_left_foot",
	TypeElectrodermalActivityRightFoot: "electrodermal_activity_right_foot",
	TypeBasalMetabolicRate:             "basal_metabolic_rate",
	TypeMetabolicAge:                   "metabolic_age",
	TypeElectrochemicalSkinConductance: "electrochemical_skin_conductance",
}

func ParseMeasurementType(code int) (MeasurementType, error) {
	t := MeasurementType(code)
	if _, ok := measurementTypeNames[t]; !ok {
		return 0, decode.UnknownCode("type", "measurement type", code)
	}
	return t, nil
}

// ParseMeasurementTypeName acepta el nombre snake_case (p.ej. "heart_rate").
func ParseMeasurementTypeName(name string) (MeasurementType, bool) {
	for t, n := range measurementTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

func (t MeasurementType) Code() int { return int(t) }

func (t MeasurementType) String() string {
	if name, ok := measurementTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MeasurementTypes devuelve todos los tipos conocidos.
func MeasurementTypes() []MeasurementType {
	out := make([]MeasurementType, 0, len(measurementTypeNames))
	for t := range measurementTypeNames {
		out = append(out, t)
	}
	sortTypes(out)
	return out
}

type Category int

const (
	CategoryReal           Category = 1
	CategoryUserObjectives Category = 2
)

func ParseCategory(code int) (Category, error) {
	switch c := Category(code); c {
	case CategoryReal, CategoryUserObjectives:
		return c, nil
	}
	return 0, decode.UnknownCode("category", "measurement group category", code)
}

func (c Category) String() string {
	switch c {
	case CategoryReal:
		return "real"
	case CategoryUserObjectives:
		return "user_objectives"
	default:
		return "unknown"
	}
}

// Attribution indica cómo se obtuvo el grupo de medidas (attrib).
type Attribution int

const (
	AttributionDeviceEntryForUser              Attribution = 0
	AttributionDeviceEntryForUserAmbiguous     Attribution = 1
	AttributionManualUserEntry                 Attribution = 2
	AttributionManualUserDuringAccountCreation Attribution = 4
	AttributionMeasureAuto                     Attribution = 5
	AttributionMeasureUserConfirmed            Attribution = 7
	AttributionSameAsDeviceEntryForUser        Attribution = 8
)

var attributionNames = map[Attribution]string{
	AttributionDeviceEntryForUser:              "device_entry_for_user",
	AttributionDeviceEntryForUserAmbiguous:     "device_entry_for_user_ambiguous",
	AttributionManualUserEntry:                 "manual_user_entry",
	AttributionManualUserDuringAccountCreation: "manual_user_during_account_creation",
	AttributionMeasureAuto:                     "measure_auto",
	AttributionMeasureUserConfirmed:            "measure_user_confirmed",
	AttributionSameAsDeviceEntryForUser:        "same_as_device_entry_for_user",
}

func ParseAttribution(code int) (Attribution, error) {
	a := Attribution(code)
	if _, ok := attributionNames[a]; !ok {
		return 0, decode.UnknownCode("attrib", "measurement group attribution", code)
	}
	return a, nil
}

func (a Attribution) String() string {
	if name, ok := attributionNames[a]; ok {
		return name
	}
	return "unknown"
}
