// Package audit serves the admin action log.
package audit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Service reads the audit log.
type Service interface {
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Handler serves GET /audit.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.audit.Recent")

	limit, err := params.Int(r, "limit", 0)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.Recent(r.Context(), limit)
	handlers.Respond(w, r, log, res, err)
}
