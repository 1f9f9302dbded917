// Package content implements moderation of user-generated polls and comments.
package content

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/bulk"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/calc"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/daterange"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/paginate"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Repository is the content table.
type Repository interface {
	ListContent(ctx context.Context) ([]models.Content, error)
	ContentByID(ctx context.Context, id int) (models.Content, error)
	UpdateContentStatus(ctx context.Context, id int, status models.ContentStatus) (models.Content, error)
	DeleteContent(ctx context.Context, id int) (models.Content, error)
	ReportContent(ctx context.Context, id int) (models.Content, error)
}

// Service moderates content.
type Service struct {
	repo  Repository
	clock clock.Clock
	log   *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		clock: clk,
		log:   log,
	}
}

// List returns one page of content.
func (s *Service) List(ctx context.Context, page, limit int) (models.Page[models.Content], error) {
	items, err := s.repo.ListContent(ctx)
	if err != nil {
		return models.Page[models.Content]{}, err
	}
	return paginate.Paginate(items, page, limit)
}

// Flagged returns every item with at least one report, whatever its status.
func (s *Service) Flagged(ctx context.Context) ([]models.Content, error) {
	return s.where(ctx, func(c models.Content) bool { return c.Reports > 0 })
}

// ByStatus returns the items with the given moderation status.
func (s *Service) ByStatus(ctx context.Context, status string) ([]models.Content, error) {
	st, err := models.ParseContentStatus(status)
	if err != nil {
		return nil, err
	}
	return s.where(ctx, func(c models.Content) bool { return c.Status == st })
}

// ByType returns the polls or the comments.
func (s *Service) ByType(ctx context.Context, contentType string) ([]models.Content, error) {
	ct, err := models.ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	return s.where(ctx, func(c models.Content) bool { return c.Type == ct })
}

// ByUser returns the items authored by userID.
func (s *Service) ByUser(ctx context.Context, userID int) ([]models.Content, error) {
	return s.where(ctx, func(c models.Content) bool { return c.UserID == userID })
}

// Details returns the item with id.
func (s *Service) Details(ctx context.Context, id int) (models.Content, error) {
	return s.repo.ContentByID(ctx, id)
}

// Approve marks the item approved.
func (s *Service) Approve(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	return s.setStatus(ctx, id, models.ContentApproved, "Content approved successfully")
}

// Reject marks the item rejected.
func (s *Service) Reject(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	return s.setStatus(ctx, id, models.ContentRejected, "Content rejected successfully")
}

// Flag marks the item for review.
func (s *Service) Flag(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	return s.setStatus(ctx, id, models.ContentFlagged, "Content flagged for review")
}

func (s *Service) setStatus(ctx context.Context, id int, status models.ContentStatus, message string) (models.ActionResult[models.Content], error) {
	item, err := s.updateStatus(ctx, id, status)
	if err != nil {
		return models.ActionResult[models.Content]{}, err
	}
	return models.Succeeded(message, item), nil
}

func (s *Service) updateStatus(ctx context.Context, id int, status models.ContentStatus) (models.Content, error) {
	item, err := s.repo.UpdateContentStatus(ctx, id, status)
	if err != nil {
		return models.Content{}, err
	}
	s.log.Info("content status updated", slog.Int("id", id), slog.String("status", string(status)))
	return item, nil
}

// Remove deletes the item.
func (s *Service) Remove(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	item, err := s.repo.DeleteContent(ctx, id)
	if err != nil {
		return models.ActionResult[models.Content]{}, err
	}
	s.log.Info("content removed", slog.Int("id", id))
	return models.Succeeded("Offensive content removed successfully", item), nil
}

// Report registers one more report against the item.
func (s *Service) Report(ctx context.Context, id int) (models.ActionResult[models.Content], error) {
	item, err := s.repo.ReportContent(ctx, id)
	if err != nil {
		return models.ActionResult[models.Content]{}, err
	}
	s.log.Info("content reported", slog.Int("id", id), slog.Int("reports", item.Reports))
	return models.Succeeded("Content reported successfully", item), nil
}

// Search matches query against title and body, case-insensitively.
// A blank query returns every item.
func (s *Service) Search(ctx context.Context, query string) ([]models.Content, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	return s.where(ctx, func(c models.Content) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Content), term)
	})
}

// Statistics aggregates the content table.
func (s *Service) Statistics(ctx context.Context) (models.ContentStatistics, error) {
	items, err := s.repo.ListContent(ctx)
	if err != nil {
		return models.ContentStatistics{}, err
	}
	withStatus := func(st models.ContentStatus) int {
		return calc.Count(items, func(c models.Content) bool { return c.Status == st })
	}
	total := len(items)
	approved := withStatus(models.ContentApproved)
	flagged := withStatus(models.ContentFlagged)

	return models.ContentStatistics{
		Total:             total,
		Approved:          approved,
		Flagged:           flagged,
		Pending:           withStatus(models.ContentPending),
		Rejected:          withStatus(models.ContentRejected),
		TotalReports:      int(calc.Sum(items, func(c models.Content) float64 { return float64(c.Reports) })),
		TotalVotes:        int(calc.Sum(items, func(c models.Content) float64 { return float64(c.Votes) })),
		FlaggedPercentage: calc.Ratio(float64(flagged), float64(total)),
		ApprovalRate:      calc.Ratio(float64(approved), float64(total)),
	}, nil
}

// RequiringModeration returns flagged and pending items, newest first.
func (s *Service) RequiringModeration(ctx context.Context) ([]models.Content, error) {
	queue, err := s.where(ctx, func(c models.Content) bool {
		return c.Status == models.ContentFlagged || c.Status == models.ContentPending
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(queue, func(a, b models.Content) int { return cmp.Compare(b.CreatedDate, a.CreatedDate) })
	return queue, nil
}

// BulkApprove approves every id independently.
func (s *Service) BulkApprove(ctx context.Context, ids []int) models.BulkResult[models.Content] {
	return s.bulkStatus(ctx, ids, models.ContentApproved, "approved")
}

// BulkReject rejects every id independently.
func (s *Service) BulkReject(ctx context.Context, ids []int) models.BulkResult[models.Content] {
	return s.bulkStatus(ctx, ids, models.ContentRejected, "rejected")
}

func (s *Service) bulkStatus(ctx context.Context, ids []int, status models.ContentStatus, verb string) models.BulkResult[models.Content] {
	return bulk.Apply(ids, "Content",
		func(id int) (models.Content, error) { return s.updateStatus(ctx, id, status) },
		func(n int) string { return fmt.Sprintf("%d content items %s", n, verb) },
	)
}

// Trends counts the items created per day over the last days days, oldest day first.
func (s *Service) Trends(ctx context.Context, days int) ([]models.ContentTrend, error) {
	if days < 1 {
		return nil, models.InvalidArgument("days must be positive")
	}
	items, err := s.repo.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	recent := daterange.Filter(items, daterange.LastDays(s.clock.Now(), days),
		func(c models.Content) string { return c.CreatedDate })

	byDate := make(map[string]*models.ContentTrend)
	for _, c := range recent {
		trend, ok := byDate[c.CreatedDate]
		if !ok {
			trend = &models.ContentTrend{Date: c.CreatedDate}
			byDate[c.CreatedDate] = trend
		}
		switch c.Type {
		case models.ContentPoll:
			trend.Polls++
		case models.ContentComment:
			trend.Comments++
		}
		trend.Total++
	}

	out := make([]models.ContentTrend, 0, len(byDate))
	for _, trend := range byDate {
		out = append(out, *trend)
	}
	slices.SortFunc(out, func(a, b models.ContentTrend) int { return cmp.Compare(a.Date, b.Date) })
	return out, nil
}

// MostReported returns up to limit reported items, most reports first.
func (s *Service) MostReported(ctx context.Context, limit int) ([]models.Content, error) {
	if limit < 1 {
		return nil, models.InvalidArgument("limit must be positive")
	}
	reported, err := s.Flagged(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(reported, func(a, b models.Content) int { return cmp.Compare(b.Reports, a.Reports) })
	if len(reported) > limit {
		reported = reported[:limit]
	}
	return reported, nil
}

func (s *Service) where(ctx context.Context, keep func(models.Content) bool) ([]models.Content, error) {
	items, err := s.repo.ListContent(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Content{}
	for _, c := range items {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, nil
}
