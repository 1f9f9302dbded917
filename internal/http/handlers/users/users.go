// Package users serves the user management endpoints.
package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	defaultLimit      = 10
	defaultRecentDays = 7
)

// Service is the user management logic.
type Service interface {
	List(ctx context.Context, page, limit int) (models.Page[models.User], error)
	Details(ctx context.Context, id int) (models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	Activate(ctx context.Context, id int) (models.ActionResult[models.User], error)
	Deactivate(ctx context.Context, id int) (models.ActionResult[models.User], error)
	Suspend(ctx context.Context, id int) (models.ActionResult[models.User], error)
	Delete(ctx context.Context, id int) (models.ActionResult[models.User], error)
	Activity(ctx context.Context, id int) (models.UserActivity, error)
	ByStatus(ctx context.Context, status string) ([]models.User, error)
	Statistics(ctx context.Context) (models.UserStatistics, error)
	RecentlyRegistered(ctx context.Context, days int) ([]models.User, error)
	MostActive(ctx context.Context, limit int) ([]models.User, error)
	BulkUpdateStatus(ctx context.Context, ids []int, status string) (models.BulkResult[models.User], error)
}

// BulkStatusRequest changes the status of several users.
type BulkStatusRequest struct {
	IDs    []int  `json:"userIds" validate:"required,min=1"`
	Status string `json:"status" validate:"required"`
}

// Handler serves /users.
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
	r.Get("/search", h.Search)
	r.Get("/status/{status}", h.ByStatus)
	r.Get("/statistics", h.Statistics)
	r.Get("/recent", h.Recent)
	r.Get("/most-active", h.MostActive)
	r.Post("/bulk-status", h.BulkStatus)
	r.Get("/{id}", h.Details)
	r.Get("/{id}/activity", h.Activity)
	r.Post("/{id}/activate", h.action("handlers.users.Activate", h.service.Activate))
	r.Post("/{id}/deactivate", h.action("handlers.users.Deactivate", h.service.Deactivate))
	r.Post("/{id}/suspend", h.action("handlers.users.Suspend", h.service.Suspend))
	r.Delete("/{id}", h.action("handlers.users.Delete", h.service.Delete))
}

// List answers one page of users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.List")

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

// Search answers the users matching q.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.Search")

	res, err := h.service.Search(r.Context(), params.String(r, "q"))
	handlers.Respond(w, r, log, res, err)
}

// ByStatus answers the users with the status in the path.
func (h *Handler) ByStatus(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.ByStatus")

	res, err := h.service.ByStatus(r.Context(), chi.URLParam(r, "status"))
	handlers.Respond(w, r, log, res, err)
}

// Statistics answers the user counts.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.Statistics")

	res, err := h.service.Statistics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// Recent answers the users who joined within the last days days.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.Recent")

	days, err := params.Int(r, "days", defaultRecentDays)
	if err != nil {
		handlers.Fail(w, r, log, "invalid days", err)
		return
	}
	res, err := h.service.RecentlyRegistered(r.Context(), days)
	handlers.Respond(w, r, log, res, err)
}

// MostActive answers the users with the most posts.
func (h *Handler) MostActive(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.MostActive")

	limit, err := params.Int(r, "limit", defaultLimit)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.MostActive(r.Context(), limit)
	handlers.Respond(w, r, log, res, err)
}

// BulkStatus changes the status of every listed user.
func (h *Handler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.BulkStatus")

	var req BulkStatusRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err == nil {
		log.Info("bulk status update", slog.Int("updated", len(res.Updated)), slog.Int("failed", len(res.Errors)))
	}
	handlers.Respond(w, r, log, res, err)
}

// Details answers one user.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.Details")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Details(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}

// Activity answers the activity summary of one user.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.users.Activity")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Activity(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) action(op string, fn func(ctx context.Context, id int) (models.ActionResult[models.User], error)) http.HandlerFunc {
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
