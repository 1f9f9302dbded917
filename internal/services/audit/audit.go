// Package audit keeps the log of mutating admin requests and forwards it to the broker.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fashion-admin/internal/broker"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const defaultRecentLimit = 100

// Repository is the audit log table.
type Repository interface {
	AddAuditEntry(ctx context.Context, e models.AuditEntry) error
	AuditEntries(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// Publisher hands messages to the broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// EventCounter counts published events.
type EventCounter interface {
	IncEventsPublished(routingKey string, err error)
}

// Service records admin actions.
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

// Record appends e to the log, assigning an id and a timestamp when missing.
// The entry stays stored even if the broker rejects it.
func (s *Service) Record(ctx context.Context, e models.AuditEntry) (models.AuditEntry, error) {
	const op = "services.audit.Record"

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.clock.Now()
	}
	if err := s.repo.AddAuditEntry(ctx, e); err != nil {
		return models.AuditEntry{}, fmt.Errorf("%s: %w", op, err)
	}

	err := s.publisher.Publish(ctx, broker.RoutingAudit, e)
	s.metrics.IncEventsPublished(broker.RoutingAudit, err)
	if err != nil {
		s.log.Warn("failed to publish audit entry", slog.String("id", e.ID), sl.Err(err))
	}
	return e, nil
}

// Recent returns the latest entries, newest first. A limit below 1 means the last 100.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit < 1 {
		limit = defaultRecentLimit
	}
	return s.repo.AuditEntries(ctx, limit)
}
