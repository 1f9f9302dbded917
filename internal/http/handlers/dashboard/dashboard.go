// Package dashboard serves the analytics endpoints.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	"github.com/magabrotheeeer/fashion-admin/internal/services/stats"
)

const exportFilename = "fashion-stats.csv"

// Service is the analytics logic.
type Service interface {
	Overview(ctx context.Context) (models.DashboardOverview, error)
	UserActivityTrends(ctx context.Context, period string) (models.LoginTrend, error)
	EngagementMetrics(ctx context.Context) (models.EngagementReport, error)
	ClosetUploads(ctx context.Context) (models.ClosetUploadStats, error)
	RevenueAnalytics(ctx context.Context) (models.RevenueAnalytics, error)
	ByDateRange(ctx context.Context, start, end string) (models.RangeStats, error)
	RealTime(ctx context.Context) (models.RealTimeStats, error)
	Comparative(ctx context.Context) (models.ComparativeAnalytics, error)
	Export(ctx context.Context, format string) (stats.Export, error)
}

// Handler serves /dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Routes mounts the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/overview", h.Overview)
	r.Get("/login-trends", h.LoginTrends)
	r.Get("/engagement", h.Engagement)
	r.Get("/closet-uploads", h.ClosetUploads)
	r.Get("/revenue", h.Revenue)
	r.Get("/date-range", h.DateRange)
	r.Get("/realtime", h.RealTime)
	r.Get("/comparative", h.Comparative)
	r.Get("/export", h.Export)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.Overview")

	res, err := h.service.Overview(r.Context())
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) LoginTrends(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.LoginTrends")

	res, err := h.service.UserActivityTrends(r.Context(), params.String(r, "period"))
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Engagement(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.Engagement")

	res, err := h.service.EngagementMetrics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) ClosetUploads(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.ClosetUploads")

	res, err := h.service.ClosetUploads(r.Context())
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.Revenue")

	res, err := h.service.RevenueAnalytics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) DateRange(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.DateRange")

	res, err := h.service.ByDateRange(r.Context(), params.String(r, "start"), params.String(r, "end"))
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) RealTime(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.RealTime")

	res, err := h.service.RealTime(r.Context())
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Comparative(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.Comparative")

	res, err := h.service.Comparative(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// Export answers the statistics snapshot. The csv format is sent as an attachment
// instead of the JSON envelope.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.dashboard.Export")

	res, err := h.service.Export(r.Context(), params.String(r, "format"))
	if err != nil {
		handlers.Fail(w, r, log, "failed to export stats", err)
		return
	}
	if res.Format != models.ExportCSV {
		handlers.Respond(w, r, log, res.Data, nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(res.CSV)); err != nil {
		log.Error("failed to write export", sl.Err(err))
	}
}
