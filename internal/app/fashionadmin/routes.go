package fashionadmin

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/audit"
	authhandler "github.com/magabrotheeeer/fashion-admin/internal/http/handlers/auth"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/content"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/health"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/notifications"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/subscriptions"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/templates"
	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers/users"
	"github.com/magabrotheeeer/fashion-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/metrics"
	auditservice "github.com/magabrotheeeer/fashion-admin/internal/services/audit"
	authservice "github.com/magabrotheeeer/fashion-admin/internal/services/auth"
	contentservice "github.com/magabrotheeeer/fashion-admin/internal/services/content"
	notificationservice "github.com/magabrotheeeer/fashion-admin/internal/services/notifications"
	statsservice "github.com/magabrotheeeer/fashion-admin/internal/services/stats"
	subscriptionservice "github.com/magabrotheeeer/fashion-admin/internal/services/subscriptions"
	templateservice "github.com/magabrotheeeer/fashion-admin/internal/services/templates"
	userservice "github.com/magabrotheeeer/fashion-admin/internal/services/users"
)

// Services is the business logic the routes delegate to.
type Services struct {
	Auth          *authservice.Service
	Users         *userservice.Service
	Content       *contentservice.Service
	Subscriptions *subscriptionservice.Service
	Stats         *statsservice.Service
	Notifications *notificationservice.Service
	Audit         *auditservice.Service
	Templates     *templateservice.Service
}

// Observability holds what the operational routes expose.
type Observability struct {
	Metrics  metrics.Provider
	Gatherer prometheus.Gatherer
	Clock    clock.Clock
}

// RegisterRoutes mounts every endpoint of the dashboard API on r.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, obs Observability, limiter *middlewarectx.IPRateLimiter) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware(obs.Metrics),
	)

	auth := authhandler.New(logger, svc.Auth)
	authenticated := middlewarectx.JWTMiddleware(svc.Auth, logger)
	audited := middlewarectx.AuditMiddleware(svc.Audit, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
				auth.PublicRoutes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(authenticated, audited)
				auth.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticated, audited)

			r.Route("/users", users.New(logger, svc.Users).Routes)
			r.Route("/content", content.New(logger, svc.Content).Routes)
			r.Route("/subscriptions", subscriptions.New(logger, svc.Subscriptions).Routes)
			r.Route("/dashboard", dashboard.New(logger, svc.Stats).Routes)
			r.Route("/notifications", notifications.New(logger, svc.Notifications).Routes)
			r.Route("/templates", templates.New(logger, svc.Templates).Routes)
			r.Get("/audit", audit.New(logger, svc.Audit).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, obs.Clock).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{}))
}
