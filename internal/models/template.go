package models

import "time"

// TemplateCategory groups AI prompt templates by what the outfit is for.
type TemplateCategory string

const (
	TemplateOccasion TemplateCategory = "occasion"
	TemplateWeather  TemplateCategory = "weather"
	TemplateMood     TemplateCategory = "mood"
	TemplateStyle    TemplateCategory = "style"
	TemplateColor    TemplateCategory = "color"
	TemplateSeason   TemplateCategory = "season"
)

// ParseTemplateCategory validates s against the known template categories.
func ParseTemplateCategory(s string) (TemplateCategory, error) {
	switch v := TemplateCategory(s); v {
	case TemplateOccasion, TemplateWeather, TemplateMood, TemplateStyle, TemplateColor, TemplateSeason:
		return v, nil
	}
	return "", InvalidArgument("Invalid template category")
}

// PromptTemplate is a prompt the outfit assistant offers to users.
type PromptTemplate struct {
	ID         int              `json:"id"`
	Title      string           `json:"title"`
	Category   TemplateCategory `json:"category"`
	Text       string           `json:"text"`
	Active     bool             `json:"isActive"`
	CreatedBy  string           `json:"createdBy"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	UsageCount int              `json:"usageCount"`
}

// NotificationTemplate is a canned push notification.
type NotificationTemplate struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}
