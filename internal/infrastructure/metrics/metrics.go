// Package metrics registra los colectores Prometheus del servicio y expone /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurantes_api"

// Registry colectores propios de la aplicación. Se instancia por proceso (y por test).
type Registry struct {
	reg *prometheus.Registry

	httpInFlight    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	reviewDecisions *prometheus.CounterVec
	uploads         *prometheus.CounterVec
	uploadBytes     prometheus.Counter
}

// NewRegistry crea y registra todos los colectores, incluidos los de proceso y runtime.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "route"}),
		reviewDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "decisions_total",
			Help:      "Owner application review decisions by outcome.",
		}, []string{"decision", "result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "files_total",
			Help:      "File uploads proxied to object storage by result.",
		}, []string{"folder", "result"}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "bytes_total",
			Help:      "Bytes successfully stored in object storage.",
		}),
	}
	r.reg.MustRegister(
		r.httpInFlight,
		r.httpRequests,
		r.httpDuration,
		r.reviewDecisions,
		r.uploads,
		r.uploadBytes,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return r
}

// Handler expone los colectores registrados en formato de texto Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer para inspección directa (tests).
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// RequestStarted incrementa las peticiones en curso; devuelve la función que cierra la medición.
// route es la plantilla de la ruta (p. ej. /api/restaurants/:id), nunca la URL concreta.
func (r *Registry) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	r.httpInFlight.Inc()
	return func(method, route string, status int) {
		r.httpInFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordReviewDecision cuenta una aprobación o rechazo; ok=false cuando la decisión falló.
func (r *Registry) RecordReviewDecision(decision string, ok bool) {
	r.reviewDecisions.WithLabelValues(decision, result(ok)).Inc()
}

// RecordUpload cuenta una subida; size solo se acumula si tuvo éxito.
func (r *Registry) RecordUpload(folder string, size int64, ok bool) {
	if folder == "" {
		folder = "unknown"
	}
	r.uploads.WithLabelValues(folder, result(ok)).Inc()
	if ok && size > 0 {
		r.uploadBytes.Add(float64(size))
	}
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
