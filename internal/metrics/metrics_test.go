package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	m := New(false, prometheus.NewRegistry())
	_, ok := m.(Noop)
	assert.True(t, ok)

	m.IncRequestsTotal("/x", 200)
	m.ObserveRequestDuration("/x", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncLoginAttempts(true)
	m.IncEventsPublished("push", nil)
}

func TestPrometheus_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(true, reg)
	_, ok := m.(*Prometheus)
	require.True(t, ok)

	m.IncCacheHits()
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncLoginAttempts(false)
	m.IncEventsPublished("audit", errors.New("closed"))
	m.IncRequestsTotal("/api/v1/users", 404)

	assert.Equal(t, 2.0, counterValue(t, reg, "fashion_admin_cache_hits_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "fashion_admin_cache_misses_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "fashion_admin_login_attempts_total", map[string]string{"result": "failure"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "fashion_admin_events_published_total",
		map[string]string{"routing_key": "audit", "result": "failure"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "fashion_admin_requests_total",
		map[string]string{"route": "/api/v1/users", "status": "4xx"}))
}

func TestStatusBucket(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{code: 101, want: "1xx"},
		{code: 200, want: "2xx"},
		{code: 301, want: "3xx"},
		{code: 422, want: "4xx"},
		{code: 503, want: "5xx"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, statusBucket(tt.code))
		})
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(true, reg)

	r := chi.NewRouter()
	r.Use(Middleware(m))
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/users/1", "/users/2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	assert.Equal(t, 2.0, counterValue(t, reg, "fashion_admin_requests_total",
		map[string]string{"route": "/users/{id}", "status": "4xx"}))
}

// counterValue returns the value of the counter name whose labels include labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range mf.GetMetric() {
			got := make(map[string]string, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metrics
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	t.Fatalf("counter %s%v not found", name, labels)
	return 0
}
