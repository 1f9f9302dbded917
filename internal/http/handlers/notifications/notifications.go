// Package notifications serves the push notification endpoints.
package notifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/http/response"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	notificationservice "github.com/magabrotheeeer/fashion-admin/internal/services/notifications"
)

// Service sends notifications and keeps their history.
type Service interface {
	Send(ctx context.Context, in notificationservice.SendInput) (models.Notification, error)
	History(ctx context.Context, limit int) ([]models.Notification, error)
	Templates(ctx context.Context) ([]models.NotificationTemplate, error)
}

// SendRequest is a notification to push. Title, body and target are checked by the service.
type SendRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	TargetType  string `json:"targetType"`
	TargetValue string `json:"targetValue"`
}

// Handler serves /notifications.
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
	r.Post("/send", h.Send)
	r.Get("/history", h.History)
	r.Get("/templates", h.Templates)
}

// Send pushes a notification on behalf of the authenticated admin.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.notifications.Send")

	var req SendRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	sentBy, _ := middlewarectx.Username(r.Context())

	n, err := h.service.Send(r.Context(), notificationservice.SendInput{
		Title:       req.Title,
		Body:        req.Body,
		TargetType:  req.TargetType,
		TargetValue: req.TargetValue,
		SentBy:      sentBy,
	})
	if err != nil {
		handlers.Fail(w, r, log, "failed to send notification", err)
		return
	}
	log.Info("notification sent", slog.String("id", n.ID), slog.String("target", string(n.TargetType)))
	render.Status(r, http.StatusCreated)
	response.OK(w, r, n)
}

// History answers the latest notifications.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.notifications.History")

	limit, err := params.Int(r, "limit", 0)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.History(r.Context(), limit)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.notifications.Templates")

	res, err := h.service.Templates(r.Context())
	handlers.Respond(w, r, log, res, err)
}
