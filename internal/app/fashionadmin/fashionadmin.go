// Package fashionadmin wires the dashboard API together and runs its HTTP server.
package fashionadmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/fashion-admin/internal/broker"
	"github.com/magabrotheeeer/fashion-admin/internal/cache"
	"github.com/magabrotheeeer/fashion-admin/internal/config"
	"github.com/magabrotheeeer/fashion-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/metrics"
	auditservice "github.com/magabrotheeeer/fashion-admin/internal/services/audit"
	authservice "github.com/magabrotheeeer/fashion-admin/internal/services/auth"
	contentservice "github.com/magabrotheeeer/fashion-admin/internal/services/content"
	notificationservice "github.com/magabrotheeeer/fashion-admin/internal/services/notifications"
	statsservice "github.com/magabrotheeeer/fashion-admin/internal/services/stats"
	subscriptionservice "github.com/magabrotheeeer/fashion-admin/internal/services/subscriptions"
	templateservice "github.com/magabrotheeeer/fashion-admin/internal/services/templates"
	userservice "github.com/magabrotheeeer/fashion-admin/internal/services/users"
	"github.com/magabrotheeeer/fashion-admin/internal/storage/memory"
)

type App struct {
	server  *http.Server
	logger  *slog.Logger
	cfg     *config.Config
	closers []io.Closer
}

// New builds the store, the optional redis cache and broker publisher, the services and
// the router. Redis and RabbitMQ are skipped when their address is not configured.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.fashionadmin.New"

	clk := clock.Real{}
	store := memory.NewDefault(memory.WithClock(clk))

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(cfg.Metrics.Enabled, reg)

	var closers []io.Closer

	var backend cache.Backend = cache.Noop{}
	if cfg.Redis.Address != "" {
		redisCache, err := cache.InitServer(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		backend = cache.NewNamespaced(redisCache, cache.ProcessNamespace("fashion-admin", clk.Now()))
		closers = append(closers, redisCache)
	} else {
		logger.Warn("redis address is not set, responses are not cached")
	}
	reportCache := cache.NewInstrumented(backend, m)

	var publisher broker.Sender = broker.Noop{}
	if cfg.RabbitMQ.URL != "" {
		p, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			closeAll(closers, logger)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = p
		closers = append(closers, p)
	} else {
		logger.Warn("rabbitmq url is not set, events are not published")
	}

	tokens := jwt.NewJWTMaker(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	svc := Services{
		Auth:          authservice.NewService(store, tokens, m, clk, logger),
		Users:         userservice.NewService(store, reportCache, clk, logger),
		Content:       contentservice.NewService(store, clk, logger),
		Subscriptions: subscriptionservice.NewService(store, clk, logger),
		Stats:         statsservice.NewService(store, reportCache, clk, logger),
		Notifications: notificationservice.NewService(store, publisher, m, clk, logger),
		Audit:         auditservice.NewService(store, publisher, m, clk, logger),
		Templates:     templateservice.NewService(store, clk, logger),
	}

	if cfg.Admin.Password != "" {
		if err := svc.Auth.Bootstrap(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email, cfg.Admin.Name); err != nil {
			closeAll(closers, logger)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		logger.Warn("admin password is not set, no admin account was created")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, Observability{Metrics: m, Gatherer: reg, Clock: clk},
		middlewarectx.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		cfg:     cfg,
		closers: closers,
	}, nil
}

// Handler returns the router, for serving the API without a listener.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is done, then shuts the server down and releases the connections.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		closeAll(a.closers, a.logger)
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		closeAll(a.closers, a.logger)
		return err
	}
}

func closeAll(closers []io.Closer, logger *slog.Logger) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}
