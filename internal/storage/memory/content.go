package memory

import (
	"context"
	"slices"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

func contentID(c models.Content) int { return c.ID }

// ListContent returns every content item in insertion order.
func (s *Store) ListContent(ctx context.Context) ([]models.Content, error) {
	const op = "storage.memory.ListContent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.content), nil
}

// ContentByID returns the content item with id.
func (s *Store) ContentByID(ctx context.Context, id int) (models.Content, error) {
	const op = "storage.memory.ContentByID"
	if err := checkCtx(ctx, op); err != nil {
		return models.Content{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexByID(s.content, id, contentID)
	if i < 0 {
		return models.Content{}, models.NotFound("Content")
	}
	return s.content[i], nil
}

// UpdateContentStatus sets the moderation status of the item with id.
func (s *Store) UpdateContentStatus(ctx context.Context, id int, status models.ContentStatus) (models.Content, error) {
	const op = "storage.memory.UpdateContentStatus"
	if err := checkCtx(ctx, op); err != nil {
		return models.Content{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.content, id, contentID)
	if i < 0 {
		return models.Content{}, models.NotFound("Content")
	}
	s.content[i].Status = status
	return s.content[i], nil
}

// DeleteContent removes the item with id and returns it.
func (s *Store) DeleteContent(ctx context.Context, id int) (models.Content, error) {
	const op = "storage.memory.DeleteContent"
	if err := checkCtx(ctx, op); err != nil {
		return models.Content{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.content, id, contentID)
	if i < 0 {
		return models.Content{}, models.NotFound("Content")
	}
	removed := s.content[i]
	s.content = slices.Delete(s.content, i, i+1)
	return removed, nil
}

// ReportContent adds one report to the item with id. Reaching FlagThreshold reports flags it.
func (s *Store) ReportContent(ctx context.Context, id int) (models.Content, error) {
	const op = "storage.memory.ReportContent"
	if err := checkCtx(ctx, op); err != nil {
		return models.Content{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.content, id, contentID)
	if i < 0 {
		return models.Content{}, models.NotFound("Content")
	}
	s.content[i].Reports++
	if s.content[i].Reports >= models.FlagThreshold {
		s.content[i].Status = models.ContentFlagged
	}
	return s.content[i], nil
}
