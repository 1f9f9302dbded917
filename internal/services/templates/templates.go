// Package templates manages the prompt templates offered by the outfit assistant.
package templates

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const maxTitleLen = 200

// Repository is the prompt template table.
type Repository interface {
	ListTemplates(ctx context.Context) ([]models.PromptTemplate, error)
	TemplateByID(ctx context.Context, id int) (models.PromptTemplate, error)
	AddTemplate(ctx context.Context, t models.PromptTemplate) (models.PromptTemplate, error)
	UpdateTemplate(ctx context.Context, t models.PromptTemplate) (models.PromptTemplate, error)
	DeleteTemplate(ctx context.Context, id int) (models.PromptTemplate, error)
}

// Service manages prompt templates.
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

// List returns the templates, newest first. A non-empty category must be a known one;
// search matches the title case-insensitively.
func (s *Service) List(ctx context.Context, category, search string) ([]models.PromptTemplate, error) {
	var cat models.TemplateCategory
	if category != "" {
		c, err := models.ParseTemplateCategory(category)
		if err != nil {
			return nil, err
		}
		cat = c
	}
	all, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	term := strings.ToLower(strings.TrimSpace(search))

	out := []models.PromptTemplate{}
	for _, t := range all {
		if cat != "" && t.Category != cat {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(t.Title), term) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Details returns the template with id.
func (s *Service) Details(ctx context.Context, id int) (models.PromptTemplate, error) {
	return s.repo.TemplateByID(ctx, id)
}

// CreateInput is a new template. Active defaults to true.
type CreateInput struct {
	Title     string
	Category  string
	Text      string
	Active    *bool
	CreatedBy string
}

// Create stores a new template authored by in.CreatedBy.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.PromptTemplate, error) {
	const op = "services.templates.Create"

	title, err := checkTitle(in.Title)
	if err != nil {
		return models.PromptTemplate{}, err
	}
	text, err := checkText(in.Text)
	if err != nil {
		return models.PromptTemplate{}, err
	}
	cat, err := models.ParseTemplateCategory(in.Category)
	if err != nil {
		return models.PromptTemplate{}, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.clock.Now()
	t, err := s.repo.AddTemplate(ctx, models.PromptTemplate{
		Title:     title,
		Category:  cat,
		Text:      text,
		Active:    active,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return models.PromptTemplate{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("template created", slog.Int("id", t.ID), slog.String("category", string(cat)))
	return t, nil
}

// UpdateInput changes a template. Nil fields are left unchanged.
type UpdateInput struct {
	Title    *string
	Category *string
	Text     *string
	Active   *bool
}

// Update applies in to the template with id.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) (models.PromptTemplate, error) {
	const op = "services.templates.Update"

	t, err := s.repo.TemplateByID(ctx, id)
	if err != nil {
		return models.PromptTemplate{}, err
	}
	if in.Title != nil {
		if t.Title, err = checkTitle(*in.Title); err != nil {
			return models.PromptTemplate{}, err
		}
	}
	if in.Text != nil {
		if t.Text, err = checkText(*in.Text); err != nil {
			return models.PromptTemplate{}, err
		}
	}
	if in.Category != nil {
		if t.Category, err = models.ParseTemplateCategory(*in.Category); err != nil {
			return models.PromptTemplate{}, err
		}
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	t.UpdatedAt = s.clock.Now()

	t, err = s.repo.UpdateTemplate(ctx, t)
	if err != nil {
		return models.PromptTemplate{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("template updated", slog.Int("id", id))
	return t, nil
}

// Delete removes the template with id.
func (s *Service) Delete(ctx context.Context, id int) (models.ActionResult[models.PromptTemplate], error) {
	t, err := s.repo.DeleteTemplate(ctx, id)
	if err != nil {
		return models.ActionResult[models.PromptTemplate]{}, err
	}
	s.log.Info("template deleted", slog.Int("id", id))
	return models.Succeeded("Template deleted successfully", t), nil
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", models.InvalidArgument("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", models.InvalidArgument("Title must be at most %d characters", maxTitleLen)
	}
	return title, nil
}

func checkText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", models.InvalidArgument("Text is required")
	}
	return text, nil
}
