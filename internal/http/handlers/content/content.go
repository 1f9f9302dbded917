// Package content serves the moderation endpoints.
package content

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/http/response"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	defaultLimit      = 10
	defaultTrendsDays = 7
)

// Service is the moderation logic.
type Service interface {
	List(ctx context.Context, page, limit int) (models.Page[models.Content], error)
	Flagged(ctx context.Context) ([]models.Content, error)
	ByStatus(ctx context.Context, status string) ([]models.Content, error)
	ByType(ctx context.Context, contentType string) ([]models.Content, error)
	ByUser(ctx context.Context, userID int) ([]models.Content, error)
	Details(ctx context.Context, id int) (models.Content, error)
	Approve(ctx context.Context, id int) (models.ActionResult[models.Content], error)
	Reject(ctx context.Context, id int) (models.ActionResult[models.Content], error)
	Flag(ctx context.Context, id int) (models.ActionResult[models.Content], error)
	Remove(ctx context.Context, id int) (models.ActionResult[models.Content], error)
	Report(ctx context.Context, id int) (models.ActionResult[models.Content], error)
	Search(ctx context.Context, query string) ([]models.Content, error)
	Statistics(ctx context.Context) (models.ContentStatistics, error)
	RequiringModeration(ctx context.Context) ([]models.Content, error)
	BulkApprove(ctx context.Context, ids []int) models.BulkResult[models.Content]
	BulkReject(ctx context.Context, ids []int) models.BulkResult[models.Content]
	Trends(ctx context.Context, days int) ([]models.ContentTrend, error)
	MostReported(ctx context.Context, limit int) ([]models.Content, error)
}

// BulkRequest names the content a bulk moderation applies to.
type BulkRequest struct {
	IDs []int `json:"contentIds" validate:"required,min=1"`
}

// Handler serves /content.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Routes mounts the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/flagged", h.list("handlers.content.Flagged", h.service.Flagged))
	r.Get("/moderation-queue", h.list("handlers.content.ModerationQueue", h.service.RequiringModeration))
	r.Get("/search", h.Search)
	r.Get("/status/{status}", h.ByStatus)
	r.Get("/type/{type}", h.ByType)
	r.Get("/statistics", h.Statistics)
	r.Get("/trends", h.Trends)
	r.Get("/most-reported", h.MostReported)
	r.Get("/user/{userId}", h.ByUser)
	r.Post("/bulk-approve", h.bulk("handlers.content.BulkApprove", h.service.BulkApprove))
	r.Post("/bulk-reject", h.bulk("handlers.content.BulkReject", h.service.BulkReject))
	r.Get("/{id}/details", h.Details)
	r.Post("/{id}/approve", h.action("handlers.content.Approve", h.service.Approve))
	r.Post("/{id}/reject", h.action("handlers.content.Reject", h.service.Reject))
	r.Post("/{id}/flag", h.action("handlers.content.Flag", h.service.Flag))
	r.Post("/{id}/report", h.action("handlers.content.Report", h.service.Report))
	r.Delete("/{id}/remove", h.action("handlers.content.Remove", h.service.Remove))
}

// List answers one page of content.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.List")

	page, err := params.Int(r, "page", 1)
	if err != nil {
		handlers.Fail(w, r, log, "invalid page", err)
		return
	}
	limit, err := params.Int(r, "limit", defaultLimit)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.List(r.Context(), page, limit)
	handlers.Respond(w, r, log, res, err)
}

// Search answers the content whose title or text contains q.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.Search")

	res, err := h.service.Search(r.Context(), params.String(r, "q"))
	handlers.Respond(w, r, log, res, err)
}

// ByStatus answers the content in the status named by the path.
func (h *Handler) ByStatus(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.ByStatus")

	res, err := h.service.ByStatus(r.Context(), chi.URLParam(r, "status"))
	handlers.Respond(w, r, log, res, err)
}

// ByType answers the polls or the comments.
func (h *Handler) ByType(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.ByType")

	res, err := h.service.ByType(r.Context(), chi.URLParam(r, "type"))
	handlers.Respond(w, r, log, res, err)
}

// ByUser answers the content created by one user.
func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.ByUser")

	userID, err := params.ID(r, "userId")
	if err != nil {
		handlers.Fail(w, r, log, "invalid user id", err)
		return
	}
	res, err := h.service.ByUser(r.Context(), userID)
	handlers.Respond(w, r, log, res, err)
}

// Statistics answers the moderation counts.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.Statistics")

	res, err := h.service.Statistics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// Trends answers the daily creation counts of the last days days.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.Trends")

	days, err := params.Int(r, "days", defaultTrendsDays)
	if err != nil {
		handlers.Fail(w, r, log, "invalid days", err)
		return
	}
	res, err := h.service.Trends(r.Context(), days)
	handlers.Respond(w, r, log, res, err)
}

// MostReported answers the content with the most reports.
func (h *Handler) MostReported(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.MostReported")

	limit, err := params.Int(r, "limit", defaultLimit)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.MostReported(r.Context(), limit)
	handlers.Respond(w, r, log, res, err)
}

// Details answers one content item.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.content.Details")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Details(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) list(op string, fn func(ctx context.Context) ([]models.Content, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := handlers.RequestLogger(h.log, r, op)

		res, err := fn(r.Context())
		handlers.Respond(w, r, log, res, err)
	}
}

func (h *Handler) action(op string, fn func(ctx context.Context, id int) (models.ActionResult[models.Content], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := handlers.RequestLogger(h.log, r, op)

		id, err := params.ID(r, "id")
		if err != nil {
			handlers.Fail(w, r, log, "invalid id", err)
			return
		}
		res, err := fn(r.Context(), id)
		if err == nil {
			log.Info(res.Message, slog.Int("id", id))
		}
		handlers.Respond(w, r, log, res, err)
	}
}

func (h *Handler) bulk(op string, fn func(ctx context.Context, ids []int) models.BulkResult[models.Content]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := handlers.RequestLogger(h.log, r, op)

		var req BulkRequest
		if !handlers.Decode(w, r, log, h.validate, &req) {
			return
		}
		res := fn(r.Context(), req.IDs)
		log.Info(res.Message, slog.Int("updated", len(res.Updated)), slog.Int("failed", len(res.Errors)))
		response.OK(w, r, res)
	}
}
