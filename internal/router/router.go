package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	mem "withings-health-sync/internal/adapters/storage/memory"
	pg "withings-health-sync/internal/adapters/storage/postgres"
	"withings-health-sync/internal/domain/devices"
	"withings-health-sync/internal/domain/goals"
	"withings-health-sync/internal/domain/measurements"
	"withings-health-sync/internal/middleware"
	"withings-health-sync/internal/platform/logger"
	"withings-health-sync/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// WithingsAPI es lo que el router necesita del cliente de Withings.
type WithingsAPI interface {
	devices.Source
	goals.Source
	measurements.Source
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Withings WithingsAPI

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Tipos pedidos a Withings; nil = todos.
	Types []measurements.MeasurementType

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler(opts.DB))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var repo measurements.Repository
	if opts.DB != nil {
		repo = pg.NewMeasurementsRepo(opts.DB)
	} else {
		repo = mem.NewMeasurementsRepo()
	}

	measurementsSvc := measurements.NewService(repo, opts.Withings, measurements.ServiceConfig{
		Types:  opts.Types,
		Logger: log,
	})

	// Rutas por módulo
	devices.RegisterRoutes(r, opts.Withings)
	goals.RegisterRoutes(r, opts.Withings)
	measurements.RegisterRoutes(r, measurementsSvc)

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "db unavailable"
// @Router /health [get]
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
