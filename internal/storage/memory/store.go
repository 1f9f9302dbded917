// Package memory is the authoritative store of the dashboard. All tables live behind one
// RWMutex and every value handed out is a copy.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Store holds the platform tables in insertion order.
type Store struct {
	mu sync.RWMutex

	users         []models.User
	content       []models.Content
	subscriptions []models.Subscription
	settings      models.SubscriptionSettings
	stats         models.Stats

	templates             []models.PromptTemplate
	notificationTemplates []models.NotificationTemplate

	admins        []models.AdminUser
	loginAttempts []models.LoginAttempt
	sessions      []models.Session
	notifications []models.Notification
	audit         []models.AuditEntry

	clock clock.Clock
}

// Option customises a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp settings updates.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New copies seed into a fresh Store.
func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		users:         slices.Clone(seed.Users),
		content:       slices.Clone(seed.Content),
		subscriptions: slices.Clone(seed.Subscriptions),
		settings:      cloneSettings(seed.Settings),
		stats:         cloneStats(seed.Stats),

		templates:             slices.Clone(seed.Templates),
		notificationTemplates: slices.Clone(seed.NotificationTemplates),

		clock: clock.Real{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefault returns a Store seeded with DefaultSeed.
func NewDefault(opts ...Option) *Store {
	return New(DefaultSeed(), opts...)
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

func indexByID[T any](items []T, id int, idOf func(T) int) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}

func cloneSettings(in models.SubscriptionSettings) models.SubscriptionSettings {
	out := in
	out.Earnings.Monthly = slices.Clone(in.Earnings.Monthly)
	return out
}

func cloneStats(in models.Stats) models.Stats {
	out := in
	out.UserActivity.DailyLogins = slices.Clone(in.UserActivity.DailyLogins)
	out.UserActivity.WeeklyLogins = slices.Clone(in.UserActivity.WeeklyLogins)
	out.ClosetUploads = slices.Clone(in.ClosetUploads)
	out.Engagement.DailyEngagement = slices.Clone(in.Engagement.DailyEngagement)
	out.Revenue.MonthlyBreakdown = slices.Clone(in.Revenue.MonthlyBreakdown)
	return out
}
