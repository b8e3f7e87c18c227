package measurements

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"withings-health-sync/internal/middleware"
	"withings-health-sync/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/measurements", func(mr chi.Router) {
		mr.Get("/", listMeasurementsHandler(svc))
		mr.Get("/latest", latestMeasurementsHandler(svc))
		mr.Get("/latest.pdf", latestPDFHandler(svc))
		mr.Get("/export.xlsx", exportXLSXHandler(svc))
	})
	r.Post("/sync", syncHandler(svc))
}

// measurementResponse es una medida decodificada.
type measurementResponse struct {
	TypeCode int     `json:"type_code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
}

// measurementGroupResponse es un grupo de medidas guardado.
type measurementGroupResponse struct {
	ID           int64                 `json:"id"`
	MeasuredAt   time.Time             `json:"measured_at"`
	Category     string                `json:"category"`
	Attribution  string                `json:"attribution"`
	DeviceID     *string               `json:"device_id"`
	ModelID      *int                  `json:"model_id"`
	Measurements []measurementResponse `json:"measurements"`
}

// syncResponse resume una corrida de sincronización.
type syncResponse struct {
	RunID   string    `json:"run_id"`
	Trigger string    `json:"trigger"`
	Since   time.Time `json:"since"`
	Until   time.Time `json:"until"`
	Groups  int       `json:"groups"`
}

// listMeasurementsHandler godoc
// @Summary Listar grupos de medidas
// @Description Lista los grupos de medidas ya sincronizados, ordenados por fecha de medición ascendente.
// @Tags measurements
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string false "Fecha/hora mínima de medición (RFC3339)"
// @Param to query string false "Fecha/hora máxima de medición (RFC3339)"
// @Param types query string false "Lista CSV de tipos (código o nombre, ej: 1,heart_rate)"
// @Success 200 {array} measurementGroupResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /measurements [get]
func listMeasurementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		types, err := parseTypes(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		groups, err := svc.List(r.Context(), filter, types)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "to must not be before from", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]measurementGroupResponse, 0, len(groups))
		for _, g := range groups {
			out = append(out, toGroupResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestMeasurementsHandler godoc
// @Summary Último valor por tipo
// @Description Agrega los grupos guardados y devuelve el valor más reciente de cada tipo, indexado por nombre.
// @Tags measurements
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param types query string false "Lista CSV de tipos (código o nombre)"
// @Success 200 {object} map[string]float64
// @Failure 400 {string} string "tipo inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /measurements/latest [get]
func latestMeasurementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		types, err := parseTypes(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		latest, err := svc.Latest(r.Context(), types)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make(map[string]float64, len(latest))
		for t, v := range latest {
			out[t.String()] = v
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestPDFHandler godoc
// @Summary Resumen PDF del último valor por tipo
// @Tags measurements
// @Produce application/pdf
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param types query string false "Lista CSV de tipos (código o nombre)"
// @Success 200 {file} file
// @Failure 400 {string} string "tipo inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /measurements/latest.pdf [get]
func latestPDFHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		types, err := parseTypes(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		latest, err := svc.Latest(r.Context(), types)
		if err == nil {
			var b []byte
			b, err = BuildLatestPDF(latest, svc.now())
			if err == nil {
				metrics.IncExport("pdf", metrics.ResultSuccess)
				writeFile(w, "application/pdf", "latest-measurements.pdf", b)
				return
			}
		}
		metrics.IncExport("pdf", metrics.ResultError)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// exportXLSXHandler godoc
// @Summary Exportar grupos a XLSX
// @Tags measurements
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string false "Fecha/hora mínima de medición (RFC3339)"
// @Param to query string false "Fecha/hora máxima de medición (RFC3339)"
// @Param types query string false "Lista CSV de tipos (código o nombre)"
// @Success 200 {file} file
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /measurements/export.xlsx [get]
func exportXLSXHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		types, err := parseTypes(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		groups, err := svc.List(r.Context(), filter, types)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "to must not be before from", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		b, err := BuildGroupsXLSX(groups)
		if err != nil {
			metrics.IncExport("xlsx", metrics.ResultError)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		metrics.IncExport("xlsx", metrics.ResultSuccess)
		writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "measurements.xlsx", b)
	}
}

// syncHandler godoc
// @Summary Sincronizar medidas
// @Description Pide a Withings (getmeas con lastupdate) los grupos modificados desde la última sincronización y los guarda.
// @Tags measurements
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} syncResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "upstream error"
// @Router /sync [post]
func syncHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		res, err := svc.Sync(r.Context())
		if err != nil {
			http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{
			RunID:   res.RunID,
			Trigger: res.Trigger,
			Since:   res.Since,
			Until:   res.Until,
			Groups:  res.Groups,
		})
	}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if middleware.UserID(r.Context()) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	filter := ListFilter{}

	// from/to RFC3339
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

// parseTypes: sin parámetro => nil (sin filtro).
// types=1,heart_rate
func parseTypes(r *http.Request) ([]MeasurementType, error) {
	v := strings.TrimSpace(r.URL.Query().Get("types"))
	if v == "" {
		return nil, nil
	}
	return ParseTypeList(v)
}

// ParseTypeList parsea una lista CSV de códigos o nombres de tipo.
// Una lista que sólo tiene separadores es un error, no "sin filtro".
func ParseTypeList(csv string) ([]MeasurementType, error) {
	parts := strings.Split(csv, ",")
	out := make([]MeasurementType, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if code, err := strconv.Atoi(p); err == nil {
			t, err := ParseMeasurementType(code)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
			continue
		}
		t, ok := ParseMeasurementTypeName(strings.ToLower(p))
		if !ok {
			return nil, fmt.Errorf("unknown measurement type %q", p)
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty measurement type list", ErrInvalidInput)
	}
	return out, nil
}

func toGroupResponse(g MeasurementGroup) measurementGroupResponse {
	resp := measurementGroupResponse{
		ID:           g.ID,
		MeasuredAt:   g.MeasuredAt,
		Category:     g.Category.String(),
		Attribution:  g.Attribution.String(),
		DeviceID:     g.DeviceID,
		Measurements: make([]measurementResponse, 0, len(g.Measurements)),
	}
	if g.Model != nil {
		code := g.Model.Code()
		resp.ModelID = &code
	}
	for _, m := range g.Measurements {
		resp.Measurements = append(resp.Measurements, measurementResponse{
			TypeCode: m.Type.Code(),
			Type:     m.Type.String(),
			Value:    m.Value,
		})
	}
	return resp
}

func writeFile(w http.ResponseWriter, contentType, filename string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
