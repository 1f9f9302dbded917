// Package auth serves admin sign in, token refresh and the account endpoints of the
// signed in admin.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/handlers"
	"github.com/magabrotheeeer/fashion-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fashion-admin/internal/http/params"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	authservice "github.com/magabrotheeeer/fashion-admin/internal/services/auth"
)

// Service is the admin authentication logic.
type Service interface {
	Login(ctx context.Context, in authservice.LoginInput) (authservice.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, username, refreshToken string) error
	Profile(ctx context.Context, username string) (models.AdminUser, error)
	UpdateProfile(ctx context.Context, username, email, name string) (models.AdminUser, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	Sessions(ctx context.Context, username string) ([]models.Session, error)
	TerminateSession(ctx context.Context, username, id string) error
	LoginAttempts(ctx context.Context, username string, limit int) ([]models.LoginAttempt, error)
}

// LoginRequest holds admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token issued at login.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ProfileRequest updates the admin's own details. Empty fields are kept.
type ProfileRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

// ChangePasswordRequest replaces the admin's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Message is the body of answers that carry no entity.
type Message struct {
	Message string `json:"message"`
}

// Handler serves /auth.
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

// PublicRoutes mounts the endpoints reachable without an access token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)
}

// Routes mounts the endpoints that need an authenticated admin.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/logout", h.Logout)
	r.Get("/profile", h.Profile)
	r.Put("/profile/update", h.UpdateProfile)
	r.Post("/change-password", h.ChangePassword)
	r.Get("/sessions", h.Sessions)
	r.Post("/sessions/{id}/terminate", h.TerminateSession)
	r.Get("/login-attempts", h.LoginAttempts)
}

// Login exchanges credentials for an access and a refresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.Login")

	var req LoginRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.Login(r.Context(), authservice.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: middlewarectx.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		handlers.Fail(w, r, log, "login failed", err)
		return
	}
	log.Info("login success", slog.String("username", req.Username))
	handlers.Respond(w, r, log, res, nil)
}

// Refresh issues a new access token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.Refresh")

	var req RefreshRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	access, err := h.service.Refresh(r.Context(), req.RefreshToken)
	handlers.Respond(w, r, log, map[string]string{"access_token": access}, err)
}

// Logout closes the caller's session of the given refresh token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.Logout")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	var req RefreshRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	err := h.service.Logout(r.Context(), username, req.RefreshToken)
	handlers.Respond(w, r, log, Message{Message: "Logged out successfully"}, err)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.Profile")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.Profile(r.Context(), username)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.UpdateProfile")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	var req ProfileRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	res, err := h.service.UpdateProfile(r.Context(), username, req.Email, req.Name)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.ChangePassword")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !handlers.Decode(w, r, log, h.validate, &req) {
		return
	}
	err := h.service.ChangePassword(r.Context(), username, req.OldPassword, req.NewPassword)
	handlers.Respond(w, r, log, Message{Message: "Password changed successfully"}, err)
}

func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.Sessions")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	res, err := h.service.Sessions(r.Context(), username)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) TerminateSession(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.TerminateSession")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	err := h.service.TerminateSession(r.Context(), username, chi.URLParam(r, "id"))
	handlers.Respond(w, r, log, Message{Message: "Session terminated successfully"}, err)
}

// LoginAttempts answers the login log. Only super admins may read it.
func (h *Handler) LoginAttempts(w http.ResponseWriter, r *http.Request) {
	log := handlers.RequestLogger(h.log, r, "handlers.auth.LoginAttempts")

	username, ok := h.username(w, r, log)
	if !ok {
		return
	}
	limit, err := params.Int(r, "limit", 0)
	if err != nil {
		handlers.Fail(w, r, log, "invalid limit", err)
		return
	}
	res, err := h.service.LoginAttempts(r.Context(), username, limit)
	handlers.Respond(w, r, log, res, err)
}

func (h *Handler) username(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	username, ok := middlewarectx.Username(r.Context())
	if !ok {
		handlers.Fail(w, r, log, "no authenticated admin", authservice.ErrInvalidCredentials)
	}
	return username, ok
}
