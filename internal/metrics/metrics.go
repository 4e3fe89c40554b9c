package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/dkozlov/livetodo/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Broadcast metrics

	EventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "events_published_total",
		Help:      "Events forwarded to the broadcast bus, by channel and event name.",
	}, []string{"channel", "event"})

	PublishFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "publish_failures_total",
		Help:      "Publish calls that the broadcast bus rejected.",
	})

	ChannelAuthTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "channel_auth_total",
		Help:      "Channel subscription authorization attempts, by outcome.",
	}, []string{"outcome"})

	// Auth metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "registrations_total",
		Help:      "Successful account registrations.",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "logins_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "livetodo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "livetodo",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		EventsPublishedTotal,
		PublishFailuresTotal,
		ChannelAuthTotal,
		RegistrationsTotal,
		LoginsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// RegisterActiveSessions exposes the live session-binding count when the
// server runs in single-session mode.
func RegisterActiveSessions(active func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "livetodo",
		Name:      "active_sessions",
		Help:      "Live per-user session secret bindings.",
	}, func() float64 { return float64(active()) }))
}

// NewServer serves /metrics plus the liveness and readiness probes on the
// internal port.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, status int, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
