package devices

import (
	"encoding/json"
	"net/http"
	"time"

	"withings-health-sync/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, src Source) {
	r.Get("/devices", listDevicesHandler(src))
}

// deviceResponse representa un dispositivo Withings vinculado a la cuenta.
type deviceResponse struct {
	Type            Type      `json:"type"`
	Battery         Battery   `json:"battery"`
	ModelID         int       `json:"model_id"`
	Model           string    `json:"model"`
	DeviceID        string    `json:"device_id"`
	HashDeviceID    string    `json:"hash_device_id"`
	Timezone        string    `json:"timezone"`
	LastSessionDate time.Time `json:"last_session_date"`
}

// listDevicesHandler godoc
// @Summary Listar dispositivos
// @Description Consulta a Withings (getdevice) los dispositivos vinculados al token configurado.
// @Tags devices
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} deviceResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "upstream error"
// @Router /devices [get]
func listDevicesHandler(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserID(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := src.GetDevices(r.Context())
		if err != nil {
			http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
			return
		}

		out := make([]deviceResponse, 0, len(items))
		for _, d := range items {
			out = append(out, deviceResponse{
				Type:            d.Type,
				Battery:         d.Battery,
				ModelID:         d.Model.Code(),
				Model:           d.Model.String(),
				DeviceID:        d.DeviceID,
				HashDeviceID:    d.HashDeviceID,
				Timezone:        d.Timezone,
				LastSessionDate: d.LastSessionDate,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
