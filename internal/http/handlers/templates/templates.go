// Package templates serves the AI prompt template endpoints.
package templates

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
	templateservice "github.com/magabrotheeeer/fashion-admin/internal/services/templates"
)

// Service is the template logic.
type Service interface {
	List(ctx context.Context, category, search string) ([]models.PromptTemplate, error)
	Details(ctx context.Context, id int) (models.PromptTemplate, error)
	Create(ctx context.Context, in templateservice.CreateInput) (models.PromptTemplate, error)
	Update(ctx context.Context, id int, in templateservice.UpdateInput) (models.PromptTemplate, error)
	Delete(ctx context.Context, id int) (models.ActionResult[models.PromptTemplate], error)
}

// CreateRequest adds a template. IsActive defaults to true.
type CreateRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,oneof=occasion weather mood style color season"`
	Text     string `json:"text" validate:"required"`
	IsActive *bool  `json:"isActive"`
}

// UpdateRequest changes the given fields of a template.
type UpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Category *string `json:"category" validate:"omitempty,oneof=occasion weather mood style color season"`
	Text     *string `json:"text"`
	IsActive *bool   `json:"isActive"`
}

// Handler serves /templates.
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
	r.Post("/create", h.Create)
	r.Get("/{id}", h.Details)
	r.Put("/{id}/update", h.Update)
	r.Delete("/{id}/delete", h.Delete)
}

// List answers the templates, optionally narrowed by category and a title search.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.templates.List")

	res, err := h.service.List(r.Context(), params.String(r, "category"), params.String(r, "search"))
	handlers.Respond(w, r, log, res, err)
}

// Create adds a template authored by the caller and answers it with 201.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.templates.Create")

	var req CreateRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	createdBy, _ := middlewarectx.Username(r.Context())

	t, err := h.service.Create(r.Context(), templateservice.CreateInput{
		Title:     req.Title,
		Category:  req.Category,
		Text:      req.Text,
		Active:    req.IsActive,
		CreatedBy: createdBy,
	})
	if err != nil {
		handlers.Fail(w, r, log, "failed to create template", err)
		return
	}
	log.Info("template created", slog.Int("id", t.ID))
	render.Status(r, http.StatusCreated)
	response.OK(w, r, t)
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.templates.Details")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Details(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.templates.Update")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	var req UpdateRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.Update(r.Context(), id, templateservice.UpdateInput{
		Title:    req.Title,
		Category: req.Category,
		Text:     req.Text,
		Active:   req.IsActive,
	})
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.templates.Delete")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Delete(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}
