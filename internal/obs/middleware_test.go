package obs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/quickdash/storefront/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("storefront", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/healthz"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "/healthz", "204"))
	if total != 1 {
		t.Fatalf("expected counter to be 1, got %v", total)
	}

	samples := testutil.CollectAndCount(metrics.Latency)
	if samples == 0 {
		t.Fatalf("expected histogram sample")
	}

	if metrics.InFlight != nil {
		if val := testutil.ToFloat64(metrics.InFlight); val != 0 {
			t.Fatalf("expected no in-flight requests, got %v", val)
		}
	}
}

func TestDomainMetricsRegisterOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs.MustRegisterDomainMetrics("storefront", registry)
	obs.MustRegisterDomainMetrics("storefront", registry)

	if obs.PromoApplyTotal == nil {
		t.Fatal("expected promo counter to be registered")
	}
	obs.PromoApplyTotal.WithLabelValues("applied").Inc()
	if got := testutil.ToFloat64(obs.PromoApplyTotal.WithLabelValues("applied")); got < 1 {
		t.Fatalf("expected at least one applied promo sample, got %v", got)
	}
}

func TestMetricsLabelByChiPatternWithoutPinnedRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("storefront", nil, registry)

	r := chi.NewRouter()
	r.Use(obs.HTTPObs{Metrics: metrics}.Middleware)
	r.Get("/api/v1/products/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products/whole-milk", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	total := testutil.ToFloat64(metrics.Requests.WithLabelValues(http.MethodGet, "/api/v1/products/{slug}", "200"))
	if total != 1 {
		t.Fatalf("expected route-labelled counter to be 1, got %v", total)
	}
}

func TestRequestLoggerEmitsRouteAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := obs.RequestLogger{Logger: logger}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carts", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/api/v1/carts"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var line struct {
		Route  string `json:"route"`
		Status int    `json:"status"`
		Bytes  int64  `json:"bytes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line.Route != "/api/v1/carts" || line.Status != http.StatusCreated || line.Bytes != 2 {
		t.Fatalf("unexpected log line: %+v", line)
	}
}

func TestBucketsFromCSV(t *testing.T) {
	if got := obs.BucketsFromCSV(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	got := obs.BucketsFromCSV("5, 50, junk, -1, 500")
	want := []float64{5, 50, 500}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
