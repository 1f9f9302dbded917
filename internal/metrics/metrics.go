// Package metrics exposes the prometheus collectors of the dashboard backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider records service metrics.
type Provider interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncLoginAttempts(success bool)
	IncEventsPublished(routingKey string, err error)
}

// Prometheus is the collector-backed Provider.
type Prometheus struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	loginAttempts   *prometheus.CounterVec
	eventsPublished *prometheus.CounterVec
}

// New returns a Noop provider when disabled, otherwise registers the collectors on reg.
func New(enabled bool, reg prometheus.Registerer) Provider {
	if !enabled {
		return Noop{}
	}
	factory := promauto.With(reg)

	return &Prometheus{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fashion_admin_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fashion_admin_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fashion_admin_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "fashion_admin_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		loginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fashion_admin_login_attempts_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),

		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fashion_admin_events_published_total",
			Help: "Broker events by routing key and result",
		}, []string{"routing_key", "result"}),
	}
}

func (m *Prometheus) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, statusBucket(status)).Inc()
}

func (m *Prometheus) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Prometheus) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *Prometheus) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *Prometheus) IncLoginAttempts(success bool) {
	m.loginAttempts.WithLabelValues(result(success)).Inc()
}

func (m *Prometheus) IncEventsPublished(routingKey string, err error) {
	m.eventsPublished.WithLabelValues(routingKey, result(err == nil)).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Noop discards everything.
type Noop struct{}

func (Noop) IncRequestsTotal(string, int)                 {}
func (Noop) ObserveRequestDuration(string, time.Duration) {}
func (Noop) IncCacheHits()                                {}
func (Noop) IncCacheMisses()                              {}
func (Noop) IncLoginAttempts(bool)                        {}
func (Noop) IncEventsPublished(string, error)             {}
