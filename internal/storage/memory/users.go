package memory

import (
	"context"
	"slices"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

func userID(u models.User) int { return u.ID }

// ListUsers returns every user in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.memory.ListUsers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

// UserByID returns the user with id.
func (s *Store) UserByID(ctx context.Context, id int) (models.User, error) {
	const op = "storage.memory.UserByID"
	if err := checkCtx(ctx, op); err != nil {
		return models.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexByID(s.users, id, userID)
	if i < 0 {
		return models.User{}, models.NotFound("User")
	}
	return s.users[i], nil
}

// UpdateUserStatus sets the status of the user with id and returns the updated record.
func (s *Store) UpdateUserStatus(ctx context.Context, id int, status models.UserStatus) (models.User, error) {
	const op = "storage.memory.UpdateUserStatus"
	if err := checkCtx(ctx, op); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.users, id, userID)
	if i < 0 {
		return models.User{}, models.NotFound("User")
	}
	s.users[i].Status = status
	return s.users[i], nil
}

// DeleteUser removes the user with id and returns the removed record.
func (s *Store) DeleteUser(ctx context.Context, id int) (models.User, error) {
	const op = "storage.memory.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.users, id, userID)
	if i < 0 {
		return models.User{}, models.NotFound("User")
	}
	removed := s.users[i]
	s.users = slices.Delete(s.users, i, i+1)
	return removed, nil
}
