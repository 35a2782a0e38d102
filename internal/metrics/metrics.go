package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/task-manager-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskapi",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskapi",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskapi",
		Name:      "login_attempts_total",
		Help:      "Password logins, by outcome.",
	}, []string{"outcome"})

	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskapi",
		Name:      "tokens_issued_total",
		Help:      "Access tokens issued, by grant (password or refresh).",
	}, []string{"grant"})

	TokenRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskapi",
		Name:      "token_rejections_total",
		Help:      "Bearer tokens rejected, by reason.",
	}, []string{"reason"})

	// Storage

	DBSlowQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "taskapi",
		Name:      "db_slow_queries_total",
		Help:      "Queries that took longer than the slow query threshold.",
	})

	DBQueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taskapi",
		Name:      "db_query_duration_seconds",
		Help:      "Duration of SQL queries.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		LoginAttemptsTotal,
		TokensIssuedTotal,
		TokenRejectionsTotal,
		DBSlowQueriesTotal,
		DBQueryDuration,
	)
}

// NewServer exposes /metrics and the health endpoints on a separate port
// so they stay off the public API router.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
