package memory

import (
	"context"
	"slices"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

func templateID(t models.PromptTemplate) int { return t.ID }

// ListTemplates returns every prompt template, newest first.
func (s *Store) ListTemplates(ctx context.Context) ([]models.PromptTemplate, error) {
	const op = "storage.memory.ListTemplates"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.templates, 0), nil
}

// TemplateByID returns the prompt template with id.
func (s *Store) TemplateByID(ctx context.Context, id int) (models.PromptTemplate, error) {
	const op = "storage.memory.TemplateByID"
	if err := checkCtx(ctx, op); err != nil {
		return models.PromptTemplate{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexByID(s.templates, id, templateID)
	if i < 0 {
		return models.PromptTemplate{}, models.NotFound("Template")
	}
	return s.templates[i], nil
}

// AddTemplate stores t under the next free id.
func (s *Store) AddTemplate(ctx context.Context, t models.PromptTemplate) (models.PromptTemplate, error) {
	const op = "storage.memory.AddTemplate"
	if err := checkCtx(ctx, op); err != nil {
		return models.PromptTemplate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := 1
	for _, existing := range s.templates {
		if existing.ID >= next {
			next = existing.ID + 1
		}
	}
	t.ID = next
	s.templates = append(s.templates, t)
	return t, nil
}

// UpdateTemplate replaces the prompt template with t.ID.
func (s *Store) UpdateTemplate(ctx context.Context, t models.PromptTemplate) (models.PromptTemplate, error) {
	const op = "storage.memory.UpdateTemplate"
	if err := checkCtx(ctx, op); err != nil {
		return models.PromptTemplate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.templates, t.ID, templateID)
	if i < 0 {
		return models.PromptTemplate{}, models.NotFound("Template")
	}
	s.templates[i] = t
	return t, nil
}

// DeleteTemplate removes the prompt template with id and returns it.
func (s *Store) DeleteTemplate(ctx context.Context, id int) (models.PromptTemplate, error) {
	const op = "storage.memory.DeleteTemplate"
	if err := checkCtx(ctx, op); err != nil {
		return models.PromptTemplate{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.templates, id, templateID)
	if i < 0 {
		return models.PromptTemplate{}, models.NotFound("Template")
	}
	removed := s.templates[i]
	s.templates = slices.Delete(s.templates, i, i+1)
	return removed, nil
}

// NotificationTemplates returns the canned push notifications.
func (s *Store) NotificationTemplates(ctx context.Context) ([]models.NotificationTemplate, error) {
	const op = "storage.memory.NotificationTemplates"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.notificationTemplates)
	if out == nil {
		out = []models.NotificationTemplate{}
	}
	return out, nil
}
