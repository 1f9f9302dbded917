// Package subscriptions implements oversight of paid plans, pricing and earnings.
package subscriptions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/bulk"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/calc"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/daterange"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/paginate"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	expiringWindowDays = 7
	urgentWindowDays   = 3
	defaultForecast    = 6
)

// Repository is the subscription table and the billing settings.
type Repository interface {
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	SubscriptionByID(ctx context.Context, id int) (models.Subscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id int, status models.SubscriptionStatus) (models.Subscription, error)
	AddSubscription(ctx context.Context, sub models.Subscription) (models.Subscription, error)
	Settings(ctx context.Context) (models.SubscriptionSettings, error)
	UpdatePricing(ctx context.Context, p models.Pricing) (models.Pricing, error)
	UpdateAdminAccount(ctx context.Context, account models.AdminAccount) (models.AdminAccount, error)
}

// Service oversees subscriptions.
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

// List returns one page of subscriptions.
func (s *Service) List(ctx context.Context, page, limit int) (models.Page[models.Subscription], error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return models.Page[models.Subscription]{}, err
	}
	return paginate.Paginate(subs, page, limit)
}

// Details returns the subscription with id.
func (s *Service) Details(ctx context.Context, id int) (models.Subscription, error) {
	return s.repo.SubscriptionByID(ctx, id)
}

func summarize(subs []models.Subscription) models.SubscriptionStats {
	withStatus := func(st models.SubscriptionStatus) int {
		return calc.Count(subs, func(s models.Subscription) bool { return s.Status == st })
	}
	withPlan := func(p models.SubscriptionPlan) int {
		return calc.Count(subs, func(s models.Subscription) bool { return s.Plan == p })
	}
	active := withStatus(models.SubscriptionActive)
	revenue := calc.Sum(subs, func(s models.Subscription) float64 {
		if s.Status != models.SubscriptionActive {
			return 0
		}
		return s.Amount
	})

	return models.SubscriptionStats{
		Total:          len(subs),
		Active:         active,
		Expired:        withStatus(models.SubscriptionExpired),
		Cancelled:      withStatus(models.SubscriptionCancelled),
		Monthly:        withPlan(models.PlanMonthly),
		Annual:         withPlan(models.PlanAnnual),
		TotalRevenue:   calc.Round2(revenue),
		ConversionRate: calc.Ratio(float64(active), float64(len(subs))),
	}
}

// Statistics counts subscriptions and projects revenue at current prices.
func (s *Service) Statistics(ctx context.Context) (models.SubscriptionStatistics, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return models.SubscriptionStatistics{}, err
	}
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return models.SubscriptionStatistics{}, err
	}
	stats := summarize(subs)
	return models.SubscriptionStatistics{
		SubscriptionStats:       stats,
		MonthlyPrice:            settings.MonthlyPrice,
		AnnualPrice:             settings.AnnualPrice,
		ProjectedMonthlyRevenue: calc.Round2(float64(stats.Active) * settings.MonthlyPrice),
	}, nil
}

// ByStatus returns the subscriptions with status.
func (s *Service) ByStatus(ctx context.Context, status string) ([]models.Subscription, error) {
	st, err := models.ParseSubscriptionStatus(status)
	if err != nil {
		return nil, err
	}
	return s.where(ctx, func(sub models.Subscription) bool { return sub.Status == st })
}

// ByPlan returns the subscriptions on plan.
func (s *Service) ByPlan(ctx context.Context, plan string) ([]models.Subscription, error) {
	p, err := models.ParseSubscriptionPlan(plan)
	if err != nil {
		return nil, err
	}
	return s.where(ctx, func(sub models.Subscription) bool { return sub.Plan == p })
}

// Earnings returns the earnings history and the latest month-over-month growth.
func (s *Service) Earnings(ctx context.Context) (models.EarningsReport, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return models.EarningsReport{}, err
	}
	monthly := settings.Earnings.Monthly
	return models.EarningsReport{
		Earnings:         settings.Earnings,
		MonthlyBreakdown: monthly,
		GrowthRate:       calc.GrowthRateOf(monthly, func(m models.MonthlyEarning) float64 { return m.Amount }),
	}, nil
}

// Settings returns pricing, the payout account and the earnings history.
func (s *Service) Settings(ctx context.Context) (models.SubscriptionSettings, error) {
	return s.repo.Settings(ctx)
}

// UpdatePricing sets both plan prices. Both must be positive.
func (s *Service) UpdatePricing(ctx context.Context, monthly, annual float64) (models.ActionResult[models.Pricing], error) {
	if monthly <= 0 || annual <= 0 {
		return models.ActionResult[models.Pricing]{}, models.InvalidArgument("Subscription prices must be greater than 0")
	}
	p, err := s.repo.UpdatePricing(ctx, models.Pricing{MonthlyPrice: monthly, AnnualPrice: annual})
	if err != nil {
		return models.ActionResult[models.Pricing]{}, err
	}
	s.log.Info("subscription pricing updated", slog.Float64("monthly", monthly), slog.Float64("annual", annual))
	return models.Succeeded("Subscription pricing updated successfully", p), nil
}

// UpdateAdminAccount changes the payout account. Both fields are required.
func (s *Service) UpdateAdminAccount(ctx context.Context, email, name string) (models.ActionResult[models.AdminAccount], error) {
	email, name = strings.TrimSpace(email), strings.TrimSpace(name)
	if email == "" || name == "" {
		return models.ActionResult[models.AdminAccount]{}, models.InvalidArgument("Email and name are required")
	}
	acc, err := s.repo.UpdateAdminAccount(ctx, models.AdminAccount{Email: email, Name: name})
	if err != nil {
		return models.ActionResult[models.AdminAccount]{}, err
	}
	s.log.Info("admin account updated", slog.String("email", email))
	return models.Succeeded("Admin account updated successfully", acc), nil
}

// Cancel marks the subscription cancelled.
func (s *Service) Cancel(ctx context.Context, id int) (models.ActionResult[models.Subscription], error) {
	return s.setStatus(ctx, id, models.SubscriptionCancelled, "Subscription cancelled successfully")
}

// Reactivate marks the subscription active again.
func (s *Service) Reactivate(ctx context.Context, id int) (models.ActionResult[models.Subscription], error) {
	return s.setStatus(ctx, id, models.SubscriptionActive, "Subscription reactivated successfully")
}

func (s *Service) setStatus(ctx context.Context, id int, status models.SubscriptionStatus, message string) (models.ActionResult[models.Subscription], error) {
	sub, err := s.updateStatus(ctx, id, status)
	if err != nil {
		return models.ActionResult[models.Subscription]{}, err
	}
	return models.Succeeded(message, sub), nil
}

func (s *Service) updateStatus(ctx context.Context, id int, status models.SubscriptionStatus) (models.Subscription, error) {
	sub, err := s.repo.UpdateSubscriptionStatus(ctx, id, status)
	if err != nil {
		return models.Subscription{}, err
	}
	s.log.Info("subscription status updated", slog.Int("id", id), slog.String("status", string(status)))
	return sub, nil
}

// Search matches query against the subscriber's username and email.
// A blank query returns every subscription.
func (s *Service) Search(ctx context.Context, query string) ([]models.Subscription, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	return s.where(ctx, func(sub models.Subscription) bool {
		return term == "" ||
			strings.Contains(strings.ToLower(sub.Username), term) ||
			strings.Contains(strings.ToLower(sub.Email), term)
	})
}

// ByDateRange returns the subscriptions started within [start, end] with an amount summary.
func (s *Service) ByDateRange(ctx context.Context, start, end string) (models.SubscriptionRange, error) {
	r, err := daterange.Parse(start, end)
	if err != nil {
		return models.SubscriptionRange{}, err
	}
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return models.SubscriptionRange{}, err
	}
	inRange := daterange.Filter(subs, r, func(sub models.Subscription) string { return sub.StartDate })
	total := calc.Sum(inRange, func(sub models.Subscription) float64 { return sub.Amount })

	return models.SubscriptionRange{
		Subscriptions: inRange,
		Summary: models.AmountSummary{
			Count:         len(inRange),
			TotalAmount:   calc.Round2(total),
			AverageAmount: calc.Average(total, len(inRange)),
		},
	}, nil
}

// ExpiringSoon returns the active subscriptions ending within a week. Those ending
// within three days are counted as urgent.
func (s *Service) ExpiringSoon(ctx context.Context) (models.ExpiringSubscriptions, error) {
	expiring, err := s.expiring(ctx)
	if err != nil {
		return models.ExpiringSubscriptions{}, err
	}
	urgentBy := s.clock.Now().AddDate(0, 0, urgentWindowDays).Format(clock.DateLayout)
	return models.ExpiringSubscriptions{
		Subscriptions: expiring,
		Count:         len(expiring),
		UrgentCount:   calc.Count(expiring, func(sub models.Subscription) bool { return sub.EndDate <= urgentBy }),
	}, nil
}

func (s *Service) expiring(ctx context.Context) ([]models.Subscription, error) {
	subs, err := s.where(ctx, func(sub models.Subscription) bool { return sub.Status == models.SubscriptionActive })
	if err != nil {
		return nil, err
	}
	window := daterange.Range{
		Start: clock.Today(s.clock),
		End:   s.clock.Now().AddDate(0, 0, expiringWindowDays).Format(clock.DateLayout),
	}
	return daterange.Filter(subs, window, func(sub models.Subscription) string { return sub.EndDate }), nil
}

// Analytics is the full subscription report.
func (s *Service) Analytics(ctx context.Context) (models.SubscriptionAnalytics, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return models.SubscriptionAnalytics{}, err
	}
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return models.SubscriptionAnalytics{}, err
	}
	expiring, err := s.expiring(ctx)
	if err != nil {
		return models.SubscriptionAnalytics{}, err
	}
	stats := summarize(subs)

	return models.SubscriptionAnalytics{
		Overview: stats,
		Financials: models.SubscriptionFinancials{
			TotalEarnings:    settings.Earnings.Total,
			MonthlyRecurring: calc.Round2(float64(stats.Monthly) * settings.MonthlyPrice),
			AnnualRecurring:  calc.Round2(float64(stats.Annual) * settings.AnnualPrice),
		},
		Metrics: models.SubscriptionMetrics{
			RetentionRate:     calc.Ratio(float64(stats.Active), float64(stats.Total)),
			ChurnRate:         calc.Ratio(float64(stats.Expired+stats.Cancelled), float64(stats.Total)),
			ConversionRate:    stats.ConversionRate,
			ExpiringSoonCount: len(expiring),
		},
		Trends: settings.Earnings.Monthly,
	}, nil
}

// EarningsInRange returns the monthly earnings within [start, end]. Without both
// bounds the whole history is returned.
func (s *Service) EarningsInRange(ctx context.Context, start, end string) ([]models.MonthlyEarning, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	monthly := settings.Earnings.Monthly
	if start == "" || end == "" {
		if monthly == nil {
			monthly = []models.MonthlyEarning{}
		}
		return monthly, nil
	}
	r, err := daterange.Parse(start, end)
	if err != nil {
		return nil, err
	}
	return daterange.Filter(monthly, r, func(m models.MonthlyEarning) string { return m.Date }), nil
}

// RevenueForecast projects the current active mix forward over months months.
// A months of 0 means the default horizon.
func (s *Service) RevenueForecast(ctx context.Context, months int) (models.RevenueForecast, error) {
	if months == 0 {
		months = defaultForecast
	}
	if months < 1 {
		return models.RevenueForecast{}, models.InvalidArgument("months must be at least 1")
	}
	active, err := s.where(ctx, func(sub models.Subscription) bool { return sub.Status == models.SubscriptionActive })
	if err != nil {
		return models.RevenueForecast{}, err
	}
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return models.RevenueForecast{}, err
	}

	monthlyCount := calc.Count(active, func(sub models.Subscription) bool { return sub.Plan == models.PlanMonthly })
	annualCount := calc.Count(active, func(sub models.Subscription) bool { return sub.Plan == models.PlanAnnual })
	monthlyRevenue := float64(monthlyCount) * settings.MonthlyPrice
	annualRevenue := float64(annualCount) * settings.AnnualPrice / 12
	projected := calc.Round2(monthlyRevenue + annualRevenue)

	now := s.clock.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	forecast := make([]models.ForecastMonth, 0, months)
	for i := 1; i <= months; i++ {
		forecast = append(forecast, models.ForecastMonth{
			Month:            firstOfMonth.AddDate(0, i, 0).Format("2006-01"),
			ProjectedRevenue: projected,
			MonthlyPlan:      calc.Round2(monthlyRevenue),
			AnnualPlan:       calc.Round2(annualRevenue),
		})
	}

	return models.RevenueForecast{
		CurrentMonthlyRevenue: projected,
		Forecast:              forecast,
		Assumptions: models.ForecastAssumptions{
			ActiveMonthlySubscriptions: monthlyCount,
			ActiveAnnualSubscriptions:  annualCount,
			MonthlyPrice:               settings.MonthlyPrice,
			AnnualPrice:                settings.AnnualPrice,
		},
	}, nil
}

// BulkUpdateStatus applies status to every id. status is validated before any update.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []int, status string) (models.BulkResult[models.Subscription], error) {
	st, err := models.ParseSubscriptionStatus(status)
	if err != nil {
		return models.BulkResult[models.Subscription]{}, err
	}
	return bulk.Apply(ids, "Subscription",
		func(id int) (models.Subscription, error) { return s.updateStatus(ctx, id, st) },
		func(n int) string { return fmt.Sprintf("%d subscriptions updated", n) },
	), nil
}

// AddInput describes a new subscription. Amount, EndDate and RenewalDate are
// derived from the plan when left empty.
type AddInput struct {
	UserID        int
	Username      string
	Email         string
	Plan          string
	Amount        float64
	StartDate     string
	EndDate       string
	PaymentMethod string
	RenewalDate   string
}

// Add stores a new active subscription.
func (s *Service) Add(ctx context.Context, in AddInput) (models.Subscription, error) {
	plan, err := models.ParseSubscriptionPlan(in.Plan)
	if err != nil {
		return models.Subscription{}, err
	}
	if in.Amount < 0 {
		return models.Subscription{}, models.InvalidArgument("amount must not be negative")
	}
	start := in.StartDate
	if start == "" {
		start = clock.Today(s.clock)
	}
	startDate, err := time.Parse(clock.DateLayout, start)
	if err != nil {
		return models.Subscription{}, models.InvalidArgument("invalid start date %q, expected YYYY-MM-DD", start)
	}

	amount := in.Amount
	if amount == 0 {
		settings, err := s.repo.Settings(ctx)
		if err != nil {
			return models.Subscription{}, err
		}
		amount = settings.MonthlyPrice
		if plan == models.PlanAnnual {
			amount = settings.AnnualPrice
		}
	}
	end := in.EndDate
	if end == "" {
		if plan == models.PlanAnnual {
			end = startDate.AddDate(1, 0, 0).Format(clock.DateLayout)
		} else {
			end = startDate.AddDate(0, 1, 0).Format(clock.DateLayout)
		}
	}
	renewal := in.RenewalDate
	if renewal == "" {
		renewal = end
	}

	sub, err := s.repo.AddSubscription(ctx, models.Subscription{
		UserID:        in.UserID,
		Username:      in.Username,
		Email:         in.Email,
		Plan:          plan,
		Amount:        amount,
		StartDate:     start,
		EndDate:       end,
		PaymentMethod: in.PaymentMethod,
		RenewalDate:   renewal,
	})
	if err != nil {
		return models.Subscription{}, err
	}
	s.log.Info("subscription added", slog.Int("id", sub.ID), slog.String("plan", string(plan)))
	return sub, nil
}

func (s *Service) where(ctx context.Context, keep func(models.Subscription) bool) ([]models.Subscription, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Subscription{}
	for _, sub := range subs {
		if keep(sub) {
			out = append(out, sub)
		}
	}
	return out, nil
}
