package devices

import (
	"context"
	"time"
)

// APIDevice es el payload crudo de v2/user?action=getdevice.
type APIDevice struct {
	Type            string `json:"type"`
	Battery         string `json:"battery"`
	Model           string `json:"model"`
	ModelID         int    `json:"model_id"`
	Timezone        string `json:"timezone"`
	LastSessionDate int64  `json:"last_session_date"`
	DeviceID        string `json:"deviceid"`
	HashDeviceID    string `json:"hash_deviceid"`
}

type Device struct {
	Type            Type
	Battery         Battery
	Model           Model
	DeviceID        string
	HashDeviceID    string
	Timezone        string
	LastSessionDate time.Time
}

func FromAPI(raw APIDevice) (Device, error) {
	typ, err := ParseType(raw.Type)
	if err != nil {
		return Device{}, err
	}
	battery, err := ParseBattery(raw.Battery)
	if err != nil {
		return Device{}, err
	}
	model, err := ParseModel("model_id", raw.ModelID)
	if err != nil {
		return Device{}, err
	}

	return Device{
		Type:            typ,
		Battery:         battery,
		Model:           model,
		DeviceID:        raw.DeviceID,
		HashDeviceID:    raw.HashDeviceID,
		Timezone:        raw.Timezone,
		LastSessionDate: time.Unix(raw.LastSessionDate, 0).UTC(),
	}, nil
}

// Source es el puerto hacia Withings que usan los handlers.
type Source interface {
	GetDevices(ctx context.Context) ([]Device, error)
}
