// Package users implements account management of platform members.
package users

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/bulk"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/calc"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/daterange"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/paginate"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const detailsTTL = time.Hour

// Repository is the user table.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id int) (models.User, error)
	UpdateUserStatus(ctx context.Context, id int, status models.UserStatus) (models.User, error)
	DeleteUser(ctx context.Context, id int) (models.User, error)
}

// Cache keeps user details between requests.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service manages user accounts.
type Service struct {
	repo  Repository
	cache Cache
	clock clock.Clock
	log   *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, cache Cache, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: clk,
		log:   log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

// List returns one page of users.
func (s *Service) List(ctx context.Context, page, limit int) (models.Page[models.User], error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return paginate.Paginate(users, page, limit)
}

// Details returns the user with id, reading through the cache.
func (s *Service) Details(ctx context.Context, id int) (models.User, error) {
	key := cacheKey(id)
	var user models.User
	found, err := s.cache.Get(ctx, key, &user)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return user, nil
	}

	user, err = s.repo.UserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if err := s.cache.Set(ctx, key, user, detailsTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return user, nil
}

// Search matches query against username and email, case-insensitively.
// A blank query returns every user.
func (s *Service) Search(ctx context.Context, query string) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nonNil(users), nil
	}
	out := []models.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), term) || strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Activate sets the user active.
func (s *Service) Activate(ctx context.Context, id int) (models.ActionResult[models.User], error) {
	return s.setStatus(ctx, id, models.UserActive, "User account activated successfully")
}

// Deactivate sets the user inactive.
func (s *Service) Deactivate(ctx context.Context, id int) (models.ActionResult[models.User], error) {
	return s.setStatus(ctx, id, models.UserInactive, "User account deactivated successfully")
}

// Suspend sets the user suspended.
func (s *Service) Suspend(ctx context.Context, id int) (models.ActionResult[models.User], error) {
	return s.setStatus(ctx, id, models.UserSuspended, "User account suspended successfully")
}

func (s *Service) setStatus(ctx context.Context, id int, status models.UserStatus, message string) (models.ActionResult[models.User], error) {
	user, err := s.updateStatus(ctx, id, status)
	if err != nil {
		return models.ActionResult[models.User]{}, err
	}
	return models.Succeeded(message, user), nil
}

func (s *Service) updateStatus(ctx context.Context, id int, status models.UserStatus) (models.User, error) {
	user, err := s.repo.UpdateUserStatus(ctx, id, status)
	if err != nil {
		return models.User{}, err
	}
	s.invalidate(ctx, id)
	s.log.Info("user status updated", slog.Int("id", id), slog.String("status", string(status)))
	return user, nil
}

// Delete removes the user.
func (s *Service) Delete(ctx context.Context, id int) (models.ActionResult[models.User], error) {
	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return models.ActionResult[models.User]{}, err
	}
	s.invalidate(ctx, id)
	s.log.Info("user deleted", slog.Int("id", id))
	return models.Succeeded("User account deleted successfully", user), nil
}

func (s *Service) invalidate(ctx context.Context, id int) {
	key := cacheKey(id)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

// Activity returns the engagement summary of the user.
func (s *Service) Activity(ctx context.Context, id int) (models.UserActivity, error) {
	u, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return models.UserActivity{}, err
	}
	return models.UserActivity{
		ID:         u.ID,
		Username:   u.Username,
		Uploads:    u.Uploads,
		Polls:      u.Polls,
		TotalVotes: u.TotalVotes,
		LastLogin:  u.LastLogin,
	}, nil
}

// ByStatus returns the users with status.
func (s *Service) ByStatus(ctx context.Context, status string) ([]models.User, error) {
	st, err := models.ParseUserStatus(status)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return filter(users, func(u models.User) bool { return u.Status == st }), nil
}

// Statistics aggregates the user table.
func (s *Service) Statistics(ctx context.Context) (models.UserStatistics, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return models.UserStatistics{}, err
	}
	withStatus := func(st models.UserStatus) int {
		return calc.Count(users, func(u models.User) bool { return u.Status == st })
	}
	uploads := calc.Sum(users, func(u models.User) float64 { return float64(u.Uploads) })
	polls := calc.Sum(users, func(u models.User) float64 { return float64(u.Polls) })
	votes := calc.Sum(users, func(u models.User) float64 { return float64(u.TotalVotes) })

	return models.UserStatistics{
		TotalUsers:            len(users),
		ActiveUsers:           withStatus(models.UserActive),
		InactiveUsers:         withStatus(models.UserInactive),
		SuspendedUsers:        withStatus(models.UserSuspended),
		TotalUploads:          int(uploads),
		TotalPolls:            int(polls),
		TotalVotes:            int(votes),
		AverageUploadsPerUser: calc.Average(uploads, len(users)),
		AveragePollsPerUser:   calc.Average(polls, len(users)),
	}, nil
}

// RecentlyRegistered returns the users registered within the last days days.
func (s *Service) RecentlyRegistered(ctx context.Context, days int) ([]models.User, error) {
	if days < 0 {
		return nil, models.InvalidArgument("days must not be negative")
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	r := daterange.LastDays(s.clock.Now(), days)
	return daterange.Filter(users, r, func(u models.User) string { return u.RegistrationDate }), nil
}

// MostActive returns up to limit users ranked by uploads, polls and votes combined.
func (s *Service) MostActive(ctx context.Context, limit int) ([]models.User, error) {
	if limit < 1 {
		return nil, models.InvalidArgument("limit must be positive")
	}
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	score := func(u models.User) int { return u.Uploads + u.Polls + u.TotalVotes }
	slices.SortStableFunc(users, func(a, b models.User) int { return cmp.Compare(score(b), score(a)) })
	if len(users) > limit {
		users = users[:limit]
	}
	return nonNil(users), nil
}

// BulkUpdateStatus applies status to every id. status is validated before any update.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []int, status string) (models.BulkResult[models.User], error) {
	st, err := models.ParseUserStatus(status)
	if err != nil {
		return models.BulkResult[models.User]{}, err
	}
	res := bulk.Apply(ids, "User",
		func(id int) (models.User, error) { return s.updateStatus(ctx, id, st) },
		func(n int) string { return fmt.Sprintf("%d users updated successfully", n) },
	)
	return res, nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
