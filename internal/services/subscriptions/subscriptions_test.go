package subscriptions

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
	"github.com/magabrotheeeer/fashion-admin/internal/storage/memory"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func day(s string) time.Time {
	t, err := time.Parse(clock.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

func newService(today string) (*Service, *memory.Store) {
	clk := clock.Fixed(day(today))
	store := memory.NewDefault(memory.WithClock(clk))
	return NewService(store, clk, newNoopLogger()), store
}

func ids(subs []models.Subscription) []int {
	out := make([]int, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestService_List(t *testing.T) {
	svc, _ := newService("2024-12-10")

	page, err := svc.List(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(page.Items))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestService_Details(t *testing.T) {
	svc, _ := newService("2024-12-10")

	sub, err := svc.Details(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "trendy_sarah", sub.Username)

	_, err = svc.Details(context.Background(), 77)
	assert.EqualError(t, err, "Subscription not found")
}

func TestService_Statistics(t *testing.T) {
	svc, _ := newService("2024-12-10")

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 0, stats.Cancelled)
	assert.Equal(t, 3, stats.Monthly)
	assert.Equal(t, 1, stats.Annual)
	assert.Equal(t, 119.97, stats.TotalRevenue)
	assert.Equal(t, "75.00", stats.ConversionRate.String())
	assert.Equal(t, 9.99, stats.MonthlyPrice)
	assert.Equal(t, 99.99, stats.AnnualPrice)
	assert.Equal(t, 29.97, stats.ProjectedMonthlyRevenue)
}

func TestService_Filters(t *testing.T) {
	svc, _ := newService("2024-12-10")
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() ([]models.Subscription, error)
		want    []int
		wantMsg string
	}{
		{name: "active", call: func() ([]models.Subscription, error) { return svc.ByStatus(ctx, "active") }, want: []int{1, 2, 3}},
		{name: "cancelled", call: func() ([]models.Subscription, error) { return svc.ByStatus(ctx, "cancelled") }, want: []int{}},
		{name: "bad status", call: func() ([]models.Subscription, error) { return svc.ByStatus(ctx, "paused") }, wantMsg: "Invalid subscription status"},
		{name: "monthly", call: func() ([]models.Subscription, error) { return svc.ByPlan(ctx, "monthly") }, want: []int{1, 3, 4}},
		{name: "annual", call: func() ([]models.Subscription, error) { return svc.ByPlan(ctx, "annual") }, want: []int{2}},
		{name: "bad plan", call: func() ([]models.Subscription, error) { return svc.ByPlan(ctx, "weekly") }, wantMsg: "Invalid subscription plan"},
		{name: "search username", call: func() ([]models.Subscription, error) { return svc.Search(ctx, "queen") }, want: []int{3}},
		{name: "search email", call: func() ([]models.Subscription, error) { return svc.Search(ctx, "ALEX@example") }, want: []int{4}},
		{name: "blank search", call: func() ([]models.Subscription, error) { return svc.Search(ctx, "") }, want: []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if tt.wantMsg != "" {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				assert.EqualError(t, err, tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestService_Earnings(t *testing.T) {
	svc, _ := newService("2024-12-10")

	report, err := svc.Earnings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12350.0, report.Total)
	assert.Len(t, report.Monthly, 5)
	assert.Equal(t, report.Monthly, report.MonthlyBreakdown)
	assert.Equal(t, "7.55", report.GrowthRate.String())
}

func TestService_UpdatePricing(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		monthly float64
		annual  float64
		wantErr bool
	}{
		{name: "valid", monthly: 12.99, annual: 119.99},
		{name: "zero monthly", monthly: 0, annual: 119.99, wantErr: true},
		{name: "negative annual", monthly: 12.99, annual: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService("2024-12-10")
			res, err := svc.UpdatePricing(ctx, tt.monthly, tt.annual)
			settings, _ := store.Settings(ctx)
			if tt.wantErr {
				assert.EqualError(t, err, "Subscription prices must be greater than 0")
				assert.Equal(t, 9.99, settings.MonthlyPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Subscription pricing updated successfully", res.Message)
			assert.Equal(t, models.Pricing{MonthlyPrice: tt.monthly, AnnualPrice: tt.annual}, res.Item)
			assert.Equal(t, tt.monthly, settings.MonthlyPrice)
			assert.Equal(t, tt.annual, settings.AnnualPrice)
		})
	}
}

func TestService_UpdateAdminAccount(t *testing.T) {
	svc, _ := newService("2024-12-10")
	ctx := context.Background()

	res, err := svc.UpdateAdminAccount(ctx, "payouts@fashionapp.com", "Payouts")
	require.NoError(t, err)
	assert.Equal(t, "Admin account updated successfully", res.Message)
	assert.Equal(t, models.AdminAccount{Email: "payouts@fashionapp.com", Name: "Payouts", LastUpdated: "2024-12-10"}, res.Item)

	_, err = svc.UpdateAdminAccount(ctx, "payouts@fashionapp.com", " ")
	assert.EqualError(t, err, "Email and name are required")
}

func TestService_CancelReactivate(t *testing.T) {
	svc, store := newService("2024-12-10")
	ctx := context.Background()

	res, err := svc.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Subscription cancelled successfully", res.Message)
	assert.Equal(t, models.SubscriptionCancelled, res.Item.Status)

	res, err = svc.Reactivate(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Subscription reactivated successfully", res.Message)

	stored, _ := store.SubscriptionByID(ctx, 4)
	assert.Equal(t, models.SubscriptionActive, stored.Status)

	_, err = svc.Cancel(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_ByDateRange(t *testing.T) {
	svc, _ := newService("2024-12-10")
	ctx := context.Background()

	got, err := svc.ByDateRange(ctx, "2024-11-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got.Subscriptions))
	assert.Equal(t, 2, got.Summary.Count)
	assert.Equal(t, 19.98, got.Summary.TotalAmount)
	assert.Equal(t, "9.99", got.Summary.AverageAmount.String())

	got, err = svc.ByDateRange(ctx, "2023-01-01", "2023-12-31")
	require.NoError(t, err)
	assert.Empty(t, got.Subscriptions)
	assert.Equal(t, "0.00", got.Summary.AverageAmount.String())

	_, err = svc.ByDateRange(ctx, "", "2024-12-31")
	assert.EqualError(t, err, "Start date and end date are required")
	_, err = svc.ByDateRange(ctx, "yesterday", "2024-12-31")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestService_ExpiringSoon(t *testing.T) {
	tests := []struct {
		today      string
		wantIDs    []int
		wantUrgent int
	}{
		{today: "2024-12-10", wantIDs: []int{1}, wantUrgent: 0},
		{today: "2024-12-12", wantIDs: []int{1}, wantUrgent: 1},
		{today: "2024-12-16", wantIDs: []int{}, wantUrgent: 0},
		{today: "2024-12-26", wantIDs: []int{3}, wantUrgent: 0},
	}
	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			svc, _ := newService(tt.today)
			got, err := svc.ExpiringSoon(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got.Subscriptions))
			assert.Equal(t, len(tt.wantIDs), got.Count)
			assert.Equal(t, tt.wantUrgent, got.UrgentCount)
		})
	}
}

func TestService_ExpiringSoon_IgnoresInactive(t *testing.T) {
	svc, _ := newService("2024-12-12")
	ctx := context.Background()
	_, err := svc.Cancel(ctx, 1)
	require.NoError(t, err)

	got, err := svc.ExpiringSoon(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Count)
}

func TestService_Analytics(t *testing.T) {
	svc, _ := newService("2024-12-10")

	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, a.Overview.Total)
	assert.Equal(t, 12350.0, a.Financials.TotalEarnings)
	assert.Equal(t, 29.97, a.Financials.MonthlyRecurring)
	assert.Equal(t, 99.99, a.Financials.AnnualRecurring)
	assert.Equal(t, "75.00", a.Metrics.RetentionRate.String())
	assert.Equal(t, "25.00", a.Metrics.ChurnRate.String())
	assert.Equal(t, a.Overview.ConversionRate, a.Metrics.ConversionRate)
	assert.Equal(t, 1, a.Metrics.ExpiringSoonCount)
	assert.Len(t, a.Trends, 5)
}

func TestService_EarningsInRange(t *testing.T) {
	svc, _ := newService("2024-12-10")
	ctx := context.Background()

	tests := []struct {
		name      string
		start     string
		end       string
		wantDates []string
		wantErr   bool
	}{
		{name: "inner months", start: "2024-02-01", end: "2024-04-30", wantDates: []string{"2024-02", "2024-03", "2024-04"}},
		{name: "no bounds", wantDates: []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05"}},
		{name: "one bound returns all", start: "2024-03-01", wantDates: []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05"}},
		{name: "mid-month start excludes that month", start: "2024-03-15", end: "2024-12-31", wantDates: []string{"2024-04", "2024-05"}},
		{name: "bad date", start: "2024-13-01", end: "2024-12-31", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.EarningsInRange(ctx, tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			dates := make([]string, 0, len(got))
			for _, m := range got {
				dates = append(dates, m.Date)
			}
			assert.Equal(t, tt.wantDates, dates)
		})
	}
}

func TestService_RevenueForecast(t *testing.T) {
	svc, _ := newService("2024-12-10")
	ctx := context.Background()

	f, err := svc.RevenueForecast(ctx, 3)
	require.NoError(t, err)
	require.Len(t, f.Forecast, 3)
	assert.Equal(t, "2025-01", f.Forecast[0].Month)
	assert.Equal(t, "2025-02", f.Forecast[1].Month)
	assert.Equal(t, "2025-03", f.Forecast[2].Month)
	for _, m := range f.Forecast {
		assert.Equal(t, f.CurrentMonthlyRevenue, m.ProjectedRevenue)
		assert.Equal(t, 19.98, m.MonthlyPlan)
		assert.Equal(t, 8.33, m.AnnualPlan)
	}
	assert.InDelta(t, 28.31, f.CurrentMonthlyRevenue, 0.011)
	assert.Equal(t, models.ForecastAssumptions{
		ActiveMonthlySubscriptions: 2,
		ActiveAnnualSubscriptions:  1,
		MonthlyPrice:               9.99,
		AnnualPrice:                99.99,
	}, f.Assumptions)

	f, err = svc.RevenueForecast(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, f.Forecast, 6)

	_, err = svc.RevenueForecast(ctx, -2)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestService_RevenueForecast_MonthEnd(t *testing.T) {
	svc, _ := newService("2025-01-31")

	f, err := svc.RevenueForecast(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-02", f.Forecast[0].Month)
	assert.Equal(t, "2025-03", f.Forecast[1].Month)
}

func TestService_BulkUpdateStatus(t *testing.T) {
	svc, store := newService("2024-12-10")
	ctx := context.Background()

	res, err := svc.BulkUpdateStatus(ctx, []int{1, 999}, "cancelled")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []int{1}, ids(res.Updated))
	assert.Equal(t, []string{"Subscription with ID 999 not found"}, res.Errors)
	assert.Equal(t, "1 subscriptions updated, 1 errors occurred", res.Message)

	stored, _ := store.SubscriptionByID(ctx, 1)
	assert.Equal(t, models.SubscriptionCancelled, stored.Status)

	_, err = svc.BulkUpdateStatus(ctx, []int{2}, "frozen")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      AddInput
		want    models.Subscription
		wantErr bool
	}{
		{
			name: "annual with derived fields",
			in:   AddInput{UserID: 2, Username: "style_guru_alex", Email: "alex@example.com", Plan: "annual", StartDate: "2024-12-10", PaymentMethod: "PayPal"},
			want: models.Subscription{
				ID: 5, UserID: 2, Username: "style_guru_alex", Email: "alex@example.com", Plan: models.PlanAnnual,
				Amount: 99.99, StartDate: "2024-12-10", EndDate: "2025-12-10", Status: models.SubscriptionActive,
				PaymentMethod: "PayPal", RenewalDate: "2025-12-10",
			},
		},
		{
			name: "monthly starting today with explicit amount",
			in:   AddInput{UserID: 4, Username: "fashion_mike", Plan: "monthly", Amount: 4.99},
			want: models.Subscription{
				ID: 5, UserID: 4, Username: "fashion_mike", Plan: models.PlanMonthly, Amount: 4.99,
				StartDate: "2024-12-10", EndDate: "2025-01-10", Status: models.SubscriptionActive, RenewalDate: "2025-01-10",
			},
		},
		{name: "bad plan", in: AddInput{Plan: "weekly"}, wantErr: true},
		{name: "bad start", in: AddInput{Plan: "monthly", StartDate: "10-12-2024"}, wantErr: true},
		{name: "negative amount", in: AddInput{Plan: "monthly", Amount: -5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService("2024-12-10")
			got, err := svc.Add(ctx, tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
