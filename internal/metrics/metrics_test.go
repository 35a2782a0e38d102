package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/task-manager-api/internal/health"
	"github.com/ErlanBelekov/task-manager-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func get(t *testing.T, srv *http.Server, path string) (*httptest.ResponseRecorder, health.HealthResult) {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var result health.HealthResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return w, result
}

func TestServer_HealthEndpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := health.NewChecker(map[string]health.Pinger{
		"postgres": stubPinger{err: errors.New("connection refused")},
	}, logger, prometheus.NewRegistry())
	srv := metrics.NewServer(":0", checker)

	w, result := get(t, srv, "/health/live")
	if w.Code != http.StatusOK || result.Status != "up" {
		t.Errorf("live: status=%d body=%+v", w.Code, result)
	}

	w, result = get(t, srv, "/health/ready")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready: status = %d, want 503", w.Code)
	}
	if result.Checks["postgres"].Status != "down" {
		t.Errorf("ready: postgres check = %+v", result.Checks["postgres"])
	}
}
