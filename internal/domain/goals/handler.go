package goals

import (
	"encoding/json"
	"net/http"

	"withings-health-sync/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, src Source) {
	r.Get("/goals", getGoalsHandler(src))
}

// goalsResponse contiene los objetivos del usuario; los no definidos se omiten.
type goalsResponse struct {
	Steps        *int     `json:"steps,omitempty"`
	SleepSeconds *int     `json:"sleep_seconds,omitempty"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
}

// getGoalsHandler godoc
// @Summary Obtener objetivos
// @Description Consulta a Withings (getgoals) los objetivos de pasos, sueño y peso.
// @Tags goals
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} goalsResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "upstream error"
// @Router /goals [get]
func getGoalsHandler(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserID(r.Context()) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		g, err := src.GetGoals(r.Context())
		if err != nil {
			http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, goalsResponse{
			Steps:        g.Steps,
			SleepSeconds: g.SleepSeconds,
			WeightKg:     g.Weight,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
