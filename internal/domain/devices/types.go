package devices

import "withings-health-sync/internal/domain/decode"

type Type string

const (
	TypeScale                     Type = "Scale"
	TypeBabyphone                 Type = "Babyphone"
	TypeBloodPressureMonitor      Type = "Blood Pressure Monitor"
	TypeActivityTracker           Type = "Activity Tracker"
	TypeSleepMonitor              Type = "Sleep Monitor"
	TypeSmartConnectedThermometer Type = "Smart Connected Thermometer"
	TypeGateway                   Type = "Gateway"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeScale, TypeBabyphone, TypeBloodPressureMonitor, TypeActivityTracker,
		TypeSleepMonitor, TypeSmartConnectedThermometer, TypeGateway:
		return t, nil
	}
	return "", decode.UnknownValue("type", "device type", s)
}

type Battery string

const (
	BatteryLow    Battery = "low"
	BatteryMedium Battery = "medium"
	BatteryHigh   Battery = "high"
)

func ParseBattery(s string) (Battery, error) {
	switch b := Battery(s); b {
	case BatteryLow, BatteryMedium, BatteryHigh:
		return b, nil
	}
	return "", decode.UnknownValue("battery", "device battery", s)
}

// Model es el model_id numérico de Withings.
type Model int

const (
	ModelWBS01                  Model = 1
	ModelWS30                   Model = 2
	ModelKidScale               Model = 3
	ModelSmartBodyAnalyzer      Model = 4
	ModelBodyPlus               Model = 5
	ModelBodyCardio             Model = 6
	ModelBody                   Model = 7
	ModelBodyScan               Model = 10
	ModelWBS10                  Model = 11
	ModelWBS11                  Model = 12
	ModelBodyPlusV2             Model = 13
	ModelSmartBabyMonitor       Model = 21
	ModelWithingsHome           Model = 22
	ModelBloodPressureMonitorV1 Model = 41
	ModelBloodPressureMonitorV2 Model = 42
	ModelBloodPressureMonitorV3 Model = 43
	ModelBPMCore                Model = 44
	ModelBPMConnect             Model = 45
	ModelBPMConnectPro          Model = 46
	ModelPulse                  Model = 51
	ModelActivite               Model = 52
	ModelActivitePopSteel       Model = 53
	ModelWithingsGo             Model = 54
	ModelActiviteSteelHR        Model = 55
	ModelPulseHR                Model = 58
	ModelActiviteSteelHRSport   Model = 59
	ModelAuraDock               Model = 60
	ModelAuraSensor             Model = 61
	ModelAuraSensorV2           Model = 62
	ModelSleepAnalyzer          Model = 63
	ModelThermo                 Model = 70
	ModelMove                   Model = 90
	ModelMoveECG                Model = 91
	ModelMoveECGV2              Model = 92
	ModelScanWatch              Model = 93
)

var modelNames = map[Model]string{
	ModelWBS01:                  "Withings WBS01",
	ModelWS30:                   "WS30",
	ModelKidScale:               "Kid Scale",
	ModelSmartBodyAnalyzer:      "Smart Body Analyzer",
	ModelBodyPlus:               "Body+",
	ModelBodyCardio:             "Body Cardio",
	ModelBody:                   "Body",
	ModelBodyScan:               "Body Scan",
	ModelWBS10:                  "WBS10",
	ModelWBS11:                  "WBS11",
	ModelBodyPlusV2:             "Body+ (v2)",
	ModelSmartBabyMonitor:       "Smart Baby Monitor",
	ModelWithingsHome:           "Withings Home",
	ModelBloodPressureMonitorV1: "Withings Blood Pressure Monitor V1",
	ModelBloodPressureMonitorV2: "Withings Blood Pressure Monitor V2",
	ModelBloodPressureMonitorV3: "Withings Blood Pressure Monitor V3",
	ModelBPMCore:                "BPM Core",
	ModelBPMConnect:             "BPM Connect",
	ModelBPMConnectPro:          "BPM Connect Pro",
	ModelPulse:                  "Pulse",
	ModelActivite:               "Activite",
	ModelActivitePopSteel:       "Activite (Pop, Steel)",
	ModelWithingsGo:             "Withings Go",
	ModelActiviteSteelHR:        "Activite Steel HR",
	ModelPulseHR:                "Pulse HR",
	ModelActiviteSteelHRSport:   "Activite Steel HR Sport Edition",
	ModelAuraDock:               "Aura Dock",
	ModelAuraSensor:             "Aura Sensor",
	ModelAuraSensorV2:           "Aura Sensor V2",
	ModelSleepAnalyzer:          "Sleep Analyzer",
	ModelThermo:                 "Thermo",
	ModelMove:                   "Move",
	ModelMoveECG:                "Move ECG",
	ModelMoveECGV2:              "Move ECG (v2)",
	ModelScanWatch:              "ScanWatch",
}

// ParseModel valida el código; field es el nombre del campo en el payload
// (model_id en getdevice, model en getmeas).
func ParseModel(field string, code int) (Model, error) {
	m := Model(code)
	if _, ok := modelNames[m]; !ok {
		return 0, decode.UnknownCode(field, "device model", code)
	}
	return m, nil
}

func (m Model) Code() int { return int(m) }

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "unknown"
}
