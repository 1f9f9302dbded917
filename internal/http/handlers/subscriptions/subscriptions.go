// Package subscriptions serves the billing oversight endpoints.
package subscriptions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/http/response"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	subscriptionservice "github.com/magabrotheeeer/fashion-admin/internal/services/subscriptions"
)

const defaultLimit = 10

// Service is the billing logic.
type Service interface {
	List(ctx context.Context, page, limit int) (models.Page[models.Subscription], error)
	Details(ctx context.Context, id int) (models.Subscription, error)
	Statistics(ctx context.Context) (models.SubscriptionStatistics, error)
	ByStatus(ctx context.Context, status string) ([]models.Subscription, error)
	ByPlan(ctx context.Context, plan string) ([]models.Subscription, error)
	Earnings(ctx context.Context) (models.EarningsReport, error)
	Settings(ctx context.Context) (models.SubscriptionSettings, error)
	UpdatePricing(ctx context.Context, monthly, annual float64) (models.ActionResult[models.Pricing], error)
	UpdateAdminAccount(ctx context.Context, email, name string) (models.ActionResult[models.AdminAccount], error)
	Cancel(ctx context.Context, id int) (models.ActionResult[models.Subscription], error)
	Reactivate(ctx context.Context, id int) (models.ActionResult[models.Subscription], error)
	Search(ctx context.Context, query string) ([]models.Subscription, error)
	ByDateRange(ctx context.Context, start, end string) (models.SubscriptionRange, error)
	ExpiringSoon(ctx context.Context) (models.ExpiringSubscriptions, error)
	Analytics(ctx context.Context) (models.SubscriptionAnalytics, error)
	EarningsInRange(ctx context.Context, start, end string) ([]models.MonthlyEarning, error)
	RevenueForecast(ctx context.Context, months int) (models.RevenueForecast, error)
	BulkUpdateStatus(ctx context.Context, ids []int, status string) (models.BulkResult[models.Subscription], error)
	Add(ctx context.Context, in subscriptionservice.AddInput) (models.Subscription, error)
}

// PricingRequest sets both plan prices.
type PricingRequest struct {
	MonthlyPrice float64 `json:"monthlyPrice" validate:"required,gt=0"`
	AnnualPrice  float64 `json:"annualPrice" validate:"required,gt=0"`
}

// AdminAccountRequest changes the payout account.
type AdminAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

// BulkStatusRequest changes the status of several subscriptions.
type BulkStatusRequest struct {
	IDs    []int  `json:"subscriptionIds" validate:"required,min=1"`
	Status string `json:"status" validate:"required"`
}

// CreateRequest adds a subscription. Omitted amount and dates are derived from the plan.
type CreateRequest struct {
	UserID        int     `json:"userId" validate:"required,gt=0"`
	Username      string  `json:"username" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Plan          string  `json:"plan" validate:"required,oneof=monthly annual"`
	Amount        float64 `json:"amount" validate:"min=0"`
	StartDate     string  `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string  `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string  `json:"paymentMethod"`
	RenewalDate   string  `json:"renewalDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Handler serves /subscriptions.
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
	r.Post("/", h.Create)
	r.Get("/search", h.Search)
	r.Get("/statistics", h.Statistics)
	r.Get("/analytics", h.Analytics)
	r.Get("/status/{status}", h.ByStatus)
	r.Get("/plan/{plan}", h.ByPlan)
	r.Get("/earnings", h.Earnings)
	r.Get("/date-range", h.DateRange)
	r.Get("/expiring", h.Expiring)
	r.Get("/forecast", h.Forecast)
	r.Get("/settings", h.Settings)
	r.Put("/settings/pricing", h.UpdatePricing)
	r.Put("/settings/admin-account", h.UpdateAdminAccount)
	r.Post("/bulk-status", h.BulkStatus)
	r.Get("/{id}", h.Details)
	r.Post("/{id}/cancel", h.action("handlers.subscriptions.Cancel", h.service.Cancel))
	r.Post("/{id}/reactivate", h.action("handlers.subscriptions.Reactivate", h.service.Reactivate))
}

// List answers one page of subscriptions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.List")

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

// Create adds a subscription and answers it with 201.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Create")

	var req CreateRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	sub, err := h.service.Add(r.Context(), subscriptionservice.AddInput{
		UserID:        req.UserID,
		Username:      req.Username,
		Email:         req.Email,
		Plan:          req.Plan,
		Amount:        req.Amount,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PaymentMethod: req.PaymentMethod,
		RenewalDate:   req.RenewalDate,
	})
	if err != nil {
		handlers.Fail(w, r, log, "failed to add subscription", err)
		return
	}
	log.Info("subscription created", slog.Int("id", sub.ID))
	render.Status(r, http.StatusCreated)
	response.OK(w, r, sub)
}

// Search answers the subscriptions whose username or email contains q.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Search")

	res, err := h.service.Search(r.Context(), params.String(r, "q"))
	handlers.Respond(w, r, log, res, err)
}

// Statistics answers the subscription counts and revenue.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Statistics")

	res, err := h.service.Statistics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// Analytics answers the retention and recurring revenue figures.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Analytics")

	res, err := h.service.Analytics(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// ByStatus answers the subscriptions in the status named by the path.
func (h *Handler) ByStatus(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.ByStatus")

	res, err := h.service.ByStatus(r.Context(), chi.URLParam(r, "status"))
	handlers.Respond(w, r, log, res, err)
}

// ByPlan answers the subscriptions on the plan named by the path.
func (h *Handler) ByPlan(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.ByPlan")

	res, err := h.service.ByPlan(r.Context(), chi.URLParam(r, "plan"))
	handlers.Respond(w, r, log, res, err)
}

// Earnings answers the earnings report, or only the months within start and end
// when either bound is given.
func (h *Handler) Earnings(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Earnings")

	start, end := params.String(r, "start"), params.String(r, "end")
	if start == "" && end == "" {
		res, err := h.service.Earnings(r.Context())
		handlers.Respond(w, r, log, res, err)
		return
	}
	res, err := h.service.EarningsInRange(r.Context(), start, end)
	handlers.Respond(w, r, log, res, err)
}

// DateRange answers the subscriptions started within start and end.
func (h *Handler) DateRange(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.DateRange")

	res, err := h.service.ByDateRange(r.Context(), params.String(r, "start"), params.String(r, "end"))
	handlers.Respond(w, r, log, res, err)
}

// Expiring answers the active subscriptions ending within a week.
func (h *Handler) Expiring(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Expiring")

	res, err := h.service.ExpiringSoon(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// Forecast answers the revenue projection over months months.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Forecast")

	months, err := params.Int(r, "months", 0)
	if err != nil {
		handlers.Fail(w, r, log, "invalid months", err)
		return
	}
	res, err := h.service.RevenueForecast(r.Context(), months)
	handlers.Respond(w, r, log, res, err)
}

// Settings answers pricing, the payout account and the earnings history.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Settings")

	res, err := h.service.Settings(r.Context())
	handlers.Respond(w, r, log, res, err)
}

// UpdatePricing sets both plan prices.
func (h *Handler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.UpdatePricing")

	var req PricingRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.UpdatePricing(r.Context(), req.MonthlyPrice, req.AnnualPrice)
	handlers.Respond(w, r, log, res, err)
}

// UpdateAdminAccount changes the payout account.
func (h *Handler) UpdateAdminAccount(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.UpdateAdminAccount")

	var req AdminAccountRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.UpdateAdminAccount(r.Context(), req.Email, req.Name)
	handlers.Respond(w, r, log, res, err)
}

// BulkStatus changes the status of every listed subscription.
func (h *Handler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.BulkStatus")

	var req BulkStatusRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	handlers.Respond(w, r, log, res, err)
}

// Details answers one subscription.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.subscriptions.Details")

	id, err := params.ID(r, "id")
	if err != nil {
		handlers.Fail(w, r, log, "invalid id", err)
		return
	}
	res, err := h.service.Details(r.Context(), id)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) action(op string, fn func(ctx context.Context, id int) (models.ActionResult[models.Subscription], error)) http.HandlerFunc {
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
