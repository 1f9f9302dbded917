package memory

import (
	"context"
	"slices"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

func subscriptionID(s models.Subscription) int { return s.ID }

// ListSubscriptions returns every subscription in insertion order.
func (s *Store) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	const op = "storage.memory.ListSubscriptions"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.subscriptions), nil
}

// SubscriptionByID returns the subscription with id.
func (s *Store) SubscriptionByID(ctx context.Context, id int) (models.Subscription, error) {
	const op = "storage.memory.SubscriptionByID"
	if err := checkCtx(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexByID(s.subscriptions, id, subscriptionID)
	if i < 0 {
		return models.Subscription{}, models.NotFound("Subscription")
	}
	return s.subscriptions[i], nil
}

// UpdateSubscriptionStatus sets the status of the subscription with id.
func (s *Store) UpdateSubscriptionStatus(ctx context.Context, id int, status models.SubscriptionStatus) (models.Subscription, error) {
	const op = "storage.memory.UpdateSubscriptionStatus"
	if err := checkCtx(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.subscriptions, id, subscriptionID)
	if i < 0 {
		return models.Subscription{}, models.NotFound("Subscription")
	}
	s.subscriptions[i].Status = status
	return s.subscriptions[i], nil
}

// AddSubscription stores sub as a new active subscription with the next free id.
func (s *Store) AddSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	const op = "storage.memory.AddSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for _, existing := range s.subscriptions {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	sub.ID = next
	sub.Status = models.SubscriptionActive
	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}
