package memory

import (
	"context"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Settings returns the subscription settings.
func (s *Store) Settings(ctx context.Context) (models.SubscriptionSettings, error) {
	const op = "storage.memory.Settings"
	if err := checkCtx(ctx, op); err != nil {
		return models.SubscriptionSettings{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings), nil
}

// UpdatePricing replaces both plan prices.
func (s *Store) UpdatePricing(ctx context.Context, p models.Pricing) (models.Pricing, error) {
	const op = "storage.memory.UpdatePricing"
	if err := checkCtx(ctx, op); err != nil {
		return models.Pricing{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.MonthlyPrice = p.MonthlyPrice
	s.settings.AnnualPrice = p.AnnualPrice
	return p, nil
}

// UpdateAdminAccount merges the non-empty fields of account into the payout account
// and stamps it with today's date.
func (s *Store) UpdateAdminAccount(ctx context.Context, account models.AdminAccount) (models.AdminAccount, error) {
	const op = "storage.memory.UpdateAdminAccount"
	if err := checkCtx(ctx, op); err != nil {
		return models.AdminAccount{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if account.Email != "" {
		s.settings.AdminAccount.Email = account.Email
	}
	if account.Name != "" {
		s.settings.AdminAccount.Name = account.Name
	}
	s.settings.AdminAccount.LastUpdated = clock.Today(s.clock)
	return s.settings.AdminAccount, nil
}

// Stats returns the analytics snapshot.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	const op = "storage.memory.Stats"
	if err := checkCtx(ctx, op); err != nil {
		return models.Stats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStats(s.stats), nil
}
