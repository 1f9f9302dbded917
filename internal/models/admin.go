package models

import "time"

// AdminUser is an operator of the dashboard.
type AdminUser struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	SuperAdmin   bool      `json:"isSuperAdmin"`
	LastLoginIP  string    `json:"lastLoginIp,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginAttempt records one login try, successful or not.
type LoginAttempt struct {
	Username  string    `json:"username"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is an admin login bound to one refresh token.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	TokenID      string    `json:"-"`
	IPAddress    string    `json:"ipAddress"`
	UserAgent    string    `json:"userAgent"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	Active       bool      `json:"isActive"`
}

// Notification is a push message sent to platform users.
type Notification struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Body        string             `json:"body"`
	TargetType  NotificationTarget `json:"targetType"`
	TargetValue string             `json:"targetValue,omitempty"`
	Status      string             `json:"status"`
	SentBy      string             `json:"sentBy"`
	SentAt      time.Time          `json:"sentAt"`
}

// AuditEntry records a mutating request made by an admin.
type AuditEntry struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"statusCode"`
	IPAddress  string    `json:"ipAddress"`
	OccurredAt time.Time `json:"occurredAt"`
}
