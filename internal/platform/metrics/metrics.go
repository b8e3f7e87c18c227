package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "withings_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec

	syncRuns    *prometheus.CounterVec
	syncLatency *prometheus.HistogramVec
	syncGroups  prometheus.Counter

	exportTotal *prometheus.CounterVec
)

// Init registra las métricas en el registry por defecto. Es idempotente.
func Init() {
	registerOnce.Do(func() {
		upstreamRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "upstream_requests_total",
				Help: "Total Withings API requests by action and result",
			},
			[]string{"action", "result"},
		)
		upstreamLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "upstream_latency_seconds",
				Help:    "Withings API latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action", "result"},
		)

		syncRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "sync_runs_total",
				Help: "Total measurement sync runs by trigger and result",
			},
			[]string{"trigger", "result"},
		)
		syncLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "sync_latency_seconds",
				Help:    "Measurement sync latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger", "result"},
		)
		syncGroups = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "sync_groups_total",
				Help: "Total measurement groups stored by sync runs",
			},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total measurement exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			upstreamRequests,
			upstreamLatency,
			syncRuns,
			syncLatency,
			syncGroups,
			exportTotal,
		)
	})
}

// ObserveUpstream registra una llamada a Withings.
func ObserveUpstream(action, result string, duration time.Duration) {
	if action == "" {
		action = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if upstreamRequests != nil {
		upstreamRequests.WithLabelValues(action, result).Inc()
	}
	if upstreamLatency != nil {
		upstreamLatency.WithLabelValues(action, result).Observe(duration.Seconds())
	}
}

// ObserveSync registra una corrida de sincronización.
func ObserveSync(trigger, result string, duration time.Duration) {
	if trigger == "" {
		trigger = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if syncRuns != nil {
		syncRuns.WithLabelValues(trigger, result).Inc()
	}
	if syncLatency != nil {
		syncLatency.WithLabelValues(trigger, result).Observe(duration.Seconds())
	}
}

func AddSyncedGroups(count int) {
	if count <= 0 {
		return
	}
	if syncGroups != nil {
		syncGroups.Add(float64(count))
	}
}

func IncExport(format, result string) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// Result devuelve la etiqueta de resultado para err.
func Result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
