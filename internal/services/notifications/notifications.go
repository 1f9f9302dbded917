// Package notifications sends push notifications to platform users through the message broker.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fashion-admin/internal/broker"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	statusSent   = "sent"
	statusFailed = "failed"

	defaultHistoryLimit = 50
)

// Repository keeps the notification history.
type Repository interface {
	AddNotification(ctx context.Context, n models.Notification) error
	Notifications(ctx context.Context, limit int) ([]models.Notification, error)
	NotificationTemplates(ctx context.Context) ([]models.NotificationTemplate, error)
}

// Publisher hands messages to the broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// EventCounter counts published events.
type EventCounter interface {
	IncEventsPublished(routingKey string, err error)
}

// Service sends push notifications.
type Service struct {
	repo      Repository
	publisher Publisher
	metrics   EventCounter
	clock     clock.Clock
	log       *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, publisher Publisher, metrics EventCounter, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		clock:     clk,
		log:       log,
	}
}

// SendInput is a notification to send.
type SendInput struct {
	Title       string
	Body        string
	TargetType  string
	TargetValue string
	SentBy      string
}

// Send validates and publishes a notification. It is recorded whether or not the
// broker accepts it; a rejected one is stored as failed and the error returned.
func (s *Service) Send(ctx context.Context, in SendInput) (models.Notification, error) {
	const op = "services.notifications.Send"

	title, body := strings.TrimSpace(in.Title), strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return models.Notification{}, models.InvalidArgument("Title and body are required")
	}
	target, err := models.ParseNotificationTarget(in.TargetType)
	if err != nil {
		return models.Notification{}, err
	}
	value := strings.TrimSpace(in.TargetValue)
	if target != models.TargetAll && value == "" {
		return models.Notification{}, models.InvalidArgument("Target value is required for %s notifications", target)
	}

	n := models.Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Body:        body,
		TargetType:  target,
		TargetValue: value,
		Status:      statusSent,
		SentBy:      in.SentBy,
		SentAt:      s.clock.Now(),
	}
	pubErr := s.publisher.Publish(ctx, broker.RoutingPush, n)
	s.metrics.IncEventsPublished(broker.RoutingPush, pubErr)
	if pubErr != nil {
		n.Status = statusFailed
		s.log.Error("failed to publish notification", slog.String("id", n.ID), sl.Err(pubErr))
	}

	if err := s.repo.AddNotification(ctx, n); err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	if pubErr != nil {
		return n, fmt.Errorf("%s: %w", op, pubErr)
	}
	s.log.Info("notification sent", slog.String("id", n.ID), slog.String("target", string(target)))
	return n, nil
}

// History returns the latest notifications, newest first. A limit below 1 means the last 50.
func (s *Service) History(ctx context.Context, limit int) ([]models.Notification, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	return s.repo.Notifications(ctx, limit)
}

// Templates returns the canned notifications admins can start from.
func (s *Service) Templates(ctx context.Context) ([]models.NotificationTemplate, error) {
	return s.repo.NotificationTemplates(ctx)
}
