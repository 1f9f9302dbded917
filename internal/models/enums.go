package models

// UserStatus is the account state of a platform user.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// ParseUserStatus validates s against the known user statuses.
func ParseUserStatus(s string) (UserStatus, error) {
	switch v := UserStatus(s); v {
	case UserActive, UserInactive, UserSuspended:
		return v, nil
	}
	return "", InvalidArgument("Invalid status")
}

// ContentStatus is the moderation state of a content item.
type ContentStatus string

const (
	ContentApproved ContentStatus = "approved"
	ContentPending  ContentStatus = "pending"
	ContentFlagged  ContentStatus = "flagged"
	ContentRejected ContentStatus = "rejected"
)

// ParseContentStatus validates s against the known moderation states.
func ParseContentStatus(s string) (ContentStatus, error) {
	switch v := ContentStatus(s); v {
	case ContentApproved, ContentPending, ContentFlagged, ContentRejected:
		return v, nil
	}
	return "", InvalidArgument("Invalid status")
}

// ContentType distinguishes polls from comments.
type ContentType string

const (
	ContentPoll    ContentType = "poll"
	ContentComment ContentType = "comment"
)

// ParseContentType validates s against the known content types.
func ParseContentType(s string) (ContentType, error) {
	switch v := ContentType(s); v {
	case ContentPoll, ContentComment:
		return v, nil
	}
	return "", InvalidArgument("Invalid content type")
}

// SubscriptionStatus is the billing state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// ParseSubscriptionStatus validates s against the known subscription states.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch v := SubscriptionStatus(s); v {
	case SubscriptionActive, SubscriptionExpired, SubscriptionCancelled:
		return v, nil
	}
	return "", InvalidArgument("Invalid subscription status")
}

// SubscriptionPlan is the billing period of a subscription.
type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanAnnual  SubscriptionPlan = "annual"
)

// ParseSubscriptionPlan validates s against the known plans.
func ParseSubscriptionPlan(s string) (SubscriptionPlan, error) {
	switch v := SubscriptionPlan(s); v {
	case PlanMonthly, PlanAnnual:
		return v, nil
	}
	return "", InvalidArgument("Invalid subscription plan")
}

// Period selects the granularity of login trends.
type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// ParsePeriod validates s; an empty value means daily.
func ParsePeriod(s string) (Period, error) {
	switch v := Period(s); v {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly:
		return v, nil
	}
	return "", InvalidArgument(`Invalid period. Use "daily" or "weekly"`)
}

// ExportFormat selects the statistics export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat validates s; an empty value means json.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch v := ExportFormat(s); v {
	case "":
		return ExportJSON, nil
	case ExportJSON, ExportCSV:
		return v, nil
	}
	return "", InvalidArgument(`Invalid export format. Use "json" or "csv"`)
}

// NotificationTarget selects who receives a push notification.
type NotificationTarget string

const (
	TargetAll     NotificationTarget = "all"
	TargetUser    NotificationTarget = "user"
	TargetSegment NotificationTarget = "segment"
)

// ParseNotificationTarget validates s; an empty value means all users.
func ParseNotificationTarget(s string) (NotificationTarget, error) {
	switch v := NotificationTarget(s); v {
	case "":
		return TargetAll, nil
	case TargetAll, TargetUser, TargetSegment:
		return v, nil
	}
	return "", InvalidArgument("Invalid target type")
}
