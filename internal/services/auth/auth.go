// Package auth signs dashboard admins in and out and tracks their sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/jwt"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/password"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	roleAdmin      = "admin"
	roleSuperAdmin = "superadmin"

	minPasswordLen       = 8
	defaultAttemptsLimit = 100
)

var (
	// ErrInvalidCredentials covers unknown usernames, wrong passwords and unusable tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionClosed is returned when a refresh token belongs to a terminated session.
	ErrSessionClosed = errors.New("session closed")
	// ErrPermissionDenied is returned when an admin acts on data it does not own.
	ErrPermissionDenied = errors.New("permission denied")
)

// Repository stores admins, their sessions and the login log.
type Repository interface {
	AdminByUsername(ctx context.Context, username string) (models.AdminUser, error)
	SaveAdmin(ctx context.Context, admin models.AdminUser) (models.AdminUser, error)
	AddLoginAttempt(ctx context.Context, attempt models.LoginAttempt) error
	LoginAttempts(ctx context.Context, limit int) ([]models.LoginAttempt, error)
	AddSession(ctx context.Context, session models.Session) error
	SessionByTokenID(ctx context.Context, tokenID string) (models.Session, error)
	UpdateSession(ctx context.Context, session models.Session) error
	SessionsByUsername(ctx context.Context, username string) ([]models.Session, error)
}

// LoginCounter counts login outcomes.
type LoginCounter interface {
	IncLoginAttempts(success bool)
}

// Service authenticates dashboard admins.
type Service struct {
	repo    Repository
	tokens  jwt.Maker
	metrics LoginCounter
	clock   clock.Clock
	log     *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, tokens jwt.Maker, metrics LoginCounter, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		metrics: metrics,
		clock:   clk,
		log:     log,
	}
}

func roleOf(a models.AdminUser) string {
	if a.SuperAdmin {
		return roleSuperAdmin
	}
	return roleAdmin
}

// Bootstrap creates the super admin account unless an admin with that username exists.
func (s *Service) Bootstrap(ctx context.Context, username, rawPassword, email, name string) error {
	const op = "services.auth.Bootstrap"

	_, err := s.repo.AdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(rawPassword) < minPasswordLen {
		return fmt.Errorf("%s: admin password must be at least %d characters", op, minPasswordLen)
	}
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	now := s.clock.Now()
	if _, err := s.repo.SaveAdmin(ctx, models.AdminUser{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		SuperAdmin:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("bootstrap admin created", slog.String("username", username))
	return nil
}

// LoginInput is a login request with the caller's origin.
type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

// LoginResult is a signed-in admin with a fresh token pair.
type LoginResult struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         models.AdminUser `json:"user"`
}

// Login checks the credentials, records the attempt and opens a session bound to the
// returned refresh token.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	const op = "services.auth.Login"

	admin, err := s.repo.AdminByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if err != nil || password.CompareHash(admin.PasswordHash, in.Password) != nil {
		s.recordAttempt(ctx, in, false)
		return LoginResult{}, ErrInvalidCredentials
	}
	s.recordAttempt(ctx, in, true)

	now := s.clock.Now()
	admin.LastLoginIP = in.IPAddress
	admin.UpdatedAt = now
	if admin, err = s.repo.SaveAdmin(ctx, admin); err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	access, _, err := s.tokens.GenerateToken(admin.Username, roleOf(admin), jwt.Access)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}
	refresh, claims, err := s.tokens.GenerateToken(admin.Username, roleOf(admin), jwt.Refresh)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.AddSession(ctx, models.Session{
		ID:           uuid.NewString(),
		Username:     admin.Username,
		TokenID:      claims.ID,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
		CreatedAt:    now,
		LastActivity: now,
		Active:       true,
	}); err != nil {
		return LoginResult{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin logged in", slog.String("username", admin.Username), slog.String("ip", in.IPAddress))
	return LoginResult{AccessToken: access, RefreshToken: refresh, User: admin}, nil
}

func (s *Service) recordAttempt(ctx context.Context, in LoginInput, success bool) {
	s.metrics.IncLoginAttempts(success)
	err := s.repo.AddLoginAttempt(ctx, models.LoginAttempt{
		Username:  in.Username,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		Success:   success,
		Timestamp: s.clock.Now(),
	})
	if err != nil {
		s.log.Warn("failed to record login attempt", slog.String("username", in.Username), sl.Err(err))
	}
}

// activeSession resolves a refresh token to its open session.
func (s *Service) activeSession(ctx context.Context, refreshToken string) (*jwt.CustomClaims, models.Session, error) {
	claims, err := s.tokens.ParseToken(refreshToken, jwt.Refresh)
	if err != nil {
		return nil, models.Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	session, err := s.repo.SessionByTokenID(ctx, claims.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.Session{}, ErrSessionClosed
	}
	if err != nil {
		return nil, models.Session{}, err
	}
	if !session.Active {
		return nil, models.Session{}, ErrSessionClosed
	}
	return claims, session, nil
}

// Refresh issues a new access token for an open session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "services.auth.Refresh"

	claims, session, err := s.activeSession(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	access, _, err := s.tokens.GenerateToken(claims.Username, claims.Role, jwt.Access)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	session.LastActivity = s.clock.Now()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return access, nil
}

// Logout closes the session bound to refreshToken. Only the admin owning the
// session may close it.
func (s *Service) Logout(ctx context.Context, username, refreshToken string) error {
	const op = "services.auth.Logout"

	_, session, err := s.activeSession(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if session.Username != username {
		s.log.Warn("logout of a foreign session refused", slog.String("username", username), slog.String("session", session.ID))
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	session.Active = false
	session.LastActivity = s.clock.Now()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin logged out", slog.String("username", session.Username))
	return nil
}

// Validate parses an access token.
func (s *Service) Validate(_ context.Context, accessToken string) (*jwt.CustomClaims, error) {
	claims, err := s.tokens.ParseToken(accessToken, jwt.Access)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return claims, nil
}

// Profile returns the admin with username.
func (s *Service) Profile(ctx context.Context, username string) (models.AdminUser, error) {
	return s.repo.AdminByUsername(ctx, username)
}

// UpdateProfile changes the email and name of an admin. Blank values are left unchanged.
func (s *Service) UpdateProfile(ctx context.Context, username, email, name string) (models.AdminUser, error) {
	admin, err := s.repo.AdminByUsername(ctx, username)
	if err != nil {
		return models.AdminUser{}, err
	}
	if v := strings.TrimSpace(email); v != "" {
		admin.Email = v
	}
	if v := strings.TrimSpace(name); v != "" {
		admin.Name = v
	}
	admin.UpdatedAt = s.clock.Now()
	return s.repo.SaveAdmin(ctx, admin)
}

// ChangePassword replaces the password of an admin after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	const op = "services.auth.ChangePassword"

	if len(newPassword) < minPasswordLen {
		return models.InvalidArgument("New password must be at least %d characters", minPasswordLen)
	}
	admin, err := s.repo.AdminByUsername(ctx, username)
	if err != nil {
		return err
	}
	if password.CompareHash(admin.PasswordHash, oldPassword) != nil {
		return models.InvalidArgument("Current password is incorrect")
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	admin.PasswordHash = hash
	admin.UpdatedAt = s.clock.Now()
	if _, err := s.repo.SaveAdmin(ctx, admin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin password changed", slog.String("username", username))
	return nil
}

// Sessions returns the open sessions of username, newest first.
func (s *Service) Sessions(ctx context.Context, username string) ([]models.Session, error) {
	all, err := s.repo.SessionsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	out := []models.Session{}
	for _, sess := range all {
		if sess.Active {
			out = append(out, sess)
		}
	}
	return out, nil
}

// TerminateSession closes one of username's open sessions.
func (s *Service) TerminateSession(ctx context.Context, username, id string) error {
	open, err := s.Sessions(ctx, username)
	if err != nil {
		return err
	}
	for _, sess := range open {
		if sess.ID != id {
			continue
		}
		sess.Active = false
		sess.LastActivity = s.clock.Now()
		if err := s.repo.UpdateSession(ctx, sess); err != nil {
			return err
		}
		s.log.Info("session terminated", slog.String("username", username), slog.String("session", id))
		return nil
	}
	return models.NotFound("Session")
}

// LoginAttempts returns the latest login attempts to a super admin. A limit below 1
// means the last 100.
func (s *Service) LoginAttempts(ctx context.Context, username string, limit int) ([]models.LoginAttempt, error) {
	admin, err := s.repo.AdminByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !admin.SuperAdmin {
		return nil, ErrPermissionDenied
	}
	if limit < 1 {
		limit = defaultAttemptsLimit
	}
	return s.repo.LoginAttempts(ctx, limit)
}
