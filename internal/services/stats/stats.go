// Package stats builds the dashboard analytics reports.
package stats

import (
	"bytes"
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/lib/calc"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/clock"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/daterange"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

const (
	overviewKey  = "dashboard:overview"
	overviewTTL  = 5 * time.Minute
	topUploaders = 5
)

// Repository is the analytics snapshot.
type Repository interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// Cache keeps the dashboard overview between requests.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service builds analytics reports.
type Service struct {
	repo  Repository
	cache Cache
	clock clock.Clock
	log   *slog.Logger
}

// NewService creates a Service.
func NewService(repo Repository, cache Cache, clk clock.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: clk,
		log:   log,
	}
}

func summary(st models.Stats) models.SummaryStats {
	totalUsers := 0
	if logins := st.UserActivity.DailyLogins; len(logins) > 0 {
		totalUsers = logins[len(logins)-1].Count
	}
	return models.SummaryStats{
		TotalUsers:          totalUsers,
		TotalPolls:          st.Engagement.TotalPolls,
		TotalVotes:          st.Engagement.TotalVotes,
		TotalComments:       st.Engagement.TotalComments,
		AverageVotesPerPoll: st.Engagement.AverageVotesPerPoll,
		TotalRevenue:        st.Revenue.TotalRevenue,
		SubscriptionRevenue: st.Revenue.SubscriptionRevenue,
		AdRevenue:           st.Revenue.AdRevenue,
	}
}

// Overview is the landing report, read through the cache.
func (s *Service) Overview(ctx context.Context) (models.DashboardOverview, error) {
	var overview models.DashboardOverview
	found, err := s.cache.Get(ctx, overviewKey, &overview)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", overviewKey), sl.Err(err))
	}
	if found {
		return overview, nil
	}

	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.DashboardOverview{}, err
	}
	sum := summary(st)
	logins := st.UserActivity.DailyLogins
	overview = models.DashboardOverview{
		Summary: sum,
		Growth: models.Growth{
			Logins:     calc.GrowthRateOf(logins, func(d models.DailyLogin) float64 { return float64(d.Count) }),
			Engagement: calc.GrowthRateOf(st.Engagement.DailyEngagement, func(d models.DailyEngagement) float64 { return float64(d.Votes) }),
		},
		QuickStats: models.QuickStats{
			TodayLogins:  sum.TotalUsers,
			TotalRevenue: st.Revenue.TotalRevenue,
			ActiveUsers:  sum.TotalUsers,
			TotalPolls:   st.Engagement.TotalPolls,
		},
	}

	if err := s.cache.Set(ctx, overviewKey, overview, overviewTTL); err != nil {
		s.log.Warn("failed to write to cache", slog.String("key", overviewKey), sl.Err(err))
	}
	return overview, nil
}

// UserActivityTrends returns the login series for period. An empty period means daily.
func (s *Service) UserActivityTrends(ctx context.Context, period string) (models.LoginTrend, error) {
	p, err := models.ParsePeriod(period)
	if err != nil {
		return models.LoginTrend{}, err
	}
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.LoginTrend{}, err
	}

	trend := models.LoginTrend{Period: p, Points: []models.LoginPoint{}}
	if p == models.PeriodWeekly {
		for _, w := range st.UserActivity.WeeklyLogins {
			trend.Points = append(trend.Points, models.LoginPoint{Label: w.Week, Count: w.Count})
		}
		return trend, nil
	}
	for _, d := range st.UserActivity.DailyLogins {
		trend.Points = append(trend.Points, models.LoginPoint{Label: d.Date, Count: d.Count})
	}
	return trend, nil
}

// EngagementMetrics returns the engagement totals with whole-number daily averages.
func (s *Service) EngagementMetrics(ctx context.Context) (models.EngagementReport, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.EngagementReport{}, err
	}
	daily := st.Engagement.DailyEngagement
	meanOf := func(value func(models.DailyEngagement) float64) int {
		if len(daily) == 0 {
			return 0
		}
		return int(math.Round(calc.Sum(daily, value) / float64(len(daily))))
	}

	return models.EngagementReport{
		Engagement: st.Engagement,
		Averages: models.EngagementAverages{
			DailyVotes:    meanOf(func(d models.DailyEngagement) float64 { return float64(d.Votes) }),
			DailyComments: meanOf(func(d models.DailyEngagement) float64 { return float64(d.Comments) }),
		},
		DailyTrends: daily,
	}, nil
}

// ClosetUploads summarises closet uploads, listing users by upload count descending.
func (s *Service) ClosetUploads(ctx context.Context) (models.ClosetUploadStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.ClosetUploadStats{}, err
	}
	sorted := slices.Clone(st.ClosetUploads)
	if sorted == nil {
		sorted = []models.ClosetUpload{}
	}
	slices.SortStableFunc(sorted, func(a, b models.ClosetUpload) int { return cmp.Compare(b.Uploads, a.Uploads) })
	total := calc.Sum(sorted, func(u models.ClosetUpload) float64 { return float64(u.Uploads) })

	return models.ClosetUploadStats{
		TotalUploads:   int(total),
		AverageUploads: calc.Average(total, len(sorted)),
		TopUsers:       slices.Clone(sorted[:min(topUploaders, len(sorted))]),
		AllUsers:       sorted,
	}, nil
}

// RevenueAnalytics returns revenue with the share of each source and the latest monthly growth.
func (s *Service) RevenueAnalytics(ctx context.Context) (models.RevenueAnalytics, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.RevenueAnalytics{}, err
	}
	rev := st.Revenue
	return models.RevenueAnalytics{
		Revenue: rev,
		Percentages: models.RevenueShares{
			Subscription: calc.Ratio(rev.SubscriptionRevenue, rev.TotalRevenue),
			Ads:          calc.Ratio(rev.AdRevenue, rev.TotalRevenue),
		},
		Growth: calc.GrowthRateOf(rev.MonthlyBreakdown, func(m models.MonthlyRevenue) float64 { return m.Total }),
	}, nil
}

// ByDateRange returns the daily logins and engagement within [start, end] with totals.
func (s *Service) ByDateRange(ctx context.Context, start, end string) (models.RangeStats, error) {
	r, err := daterange.Parse(start, end)
	if err != nil {
		return models.RangeStats{}, err
	}
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.RangeStats{}, err
	}
	logins := daterange.Filter(st.UserActivity.DailyLogins, r, func(d models.DailyLogin) string { return d.Date })
	engagement := daterange.Filter(st.Engagement.DailyEngagement, r, func(d models.DailyEngagement) string { return d.Date })

	totalLogins := calc.Sum(logins, func(d models.DailyLogin) float64 { return float64(d.Count) })
	totalVotes := calc.Sum(engagement, func(d models.DailyEngagement) float64 { return float64(d.Votes) })
	totalComments := calc.Sum(engagement, func(d models.DailyEngagement) float64 { return float64(d.Comments) })

	return models.RangeStats{
		UserActivity: logins,
		Engagement:   engagement,
		Summary: models.RangeSummary{
			TotalLogins:            int(totalLogins),
			TotalVotes:             int(totalVotes),
			TotalComments:          int(totalComments),
			AverageDailyLogins:     calc.Average(totalLogins, len(logins)),
			AverageDailyEngagement: calc.Average(totalVotes+totalComments, len(engagement)),
		},
	}, nil
}

// RealTime returns today's figures; days without data count as zero.
func (s *Service) RealTime(ctx context.Context) (models.RealTimeStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.RealTimeStats{}, err
	}
	now := s.clock.Now()
	today := now.Format(clock.DateLayout)

	rt := models.RealTimeStats{LastUpdated: now.Format(time.RFC3339)}
	if i := slices.IndexFunc(st.UserActivity.DailyLogins, func(d models.DailyLogin) bool { return d.Date == today }); i >= 0 {
		rt.TodayLogins = st.UserActivity.DailyLogins[i].Count
	}
	if i := slices.IndexFunc(st.Engagement.DailyEngagement, func(d models.DailyEngagement) bool { return d.Date == today }); i >= 0 {
		rt.TodayVotes = st.Engagement.DailyEngagement[i].Votes
		rt.TodayComments = st.Engagement.DailyEngagement[i].Comments
	}
	rt.TotalTodayEngagement = rt.TodayVotes + rt.TodayComments
	return rt, nil
}

func change(current, previous int) models.Change {
	return models.Change{
		Current:          current,
		Previous:         previous,
		Change:           current - previous,
		ChangePercentage: calc.GrowthRate([]float64{float64(previous), float64(current)}),
	}
}

// Comparative compares the two most recent days of logins and engagement.
func (s *Service) Comparative(ctx context.Context) (models.ComparativeAnalytics, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return models.ComparativeAnalytics{}, err
	}
	logins, engagement := st.UserActivity.DailyLogins, st.Engagement.DailyEngagement
	if len(logins) < 2 || len(engagement) < 2 {
		return models.ComparativeAnalytics{}, models.ErrInsufficientData
	}
	latest, previous := logins[len(logins)-1], logins[len(logins)-2]
	latestEng, previousEng := engagement[len(engagement)-1], engagement[len(engagement)-2]

	return models.ComparativeAnalytics{
		Logins:   change(latest.Count, previous.Count),
		Votes:    change(latestEng.Votes, previousEng.Votes),
		Comments: change(latestEng.Comments, previousEng.Comments),
	}, nil
}

// Export is a statistics export in one encoding. Data is set for json, CSV for csv.
type Export struct {
	Format models.ExportFormat
	Data   models.StatsExport
	CSV    string
}

// Export snapshots every statistic. An empty format means json.
func (s *Service) Export(ctx context.Context, format string) (Export, error) {
	const op = "services.stats.Export"

	f, err := models.ParseExportFormat(format)
	if err != nil {
		return Export{}, err
	}
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return Export{}, err
	}
	data := models.StatsExport{
		UserActivity:  st.UserActivity,
		Engagement:    st.Engagement,
		ClosetUploads: st.ClosetUploads,
		Revenue:       st.Revenue,
		Summary:       summary(st),
		ExportDate:    s.clock.Now().Format(time.RFC3339),
	}
	if f == models.ExportJSON {
		return Export{Format: f, Data: data}, nil
	}

	text, err := toCSV(data)
	if err != nil {
		return Export{}, fmt.Errorf("%s: %w", op, err)
	}
	return Export{Format: f, CSV: text}, nil
}

// toCSV writes the daily logins and the daily engagement as two sections
// separated by a blank line.
func toCSV(data models.StatsExport) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Daily Logins"}, {"Date", "Count"}}
	for _, d := range data.UserActivity.DailyLogins {
		records = append(records, []string{d.Date, strconv.Itoa(d.Count)})
	}
	records = append(records, nil, []string{"Daily Engagement"}, []string{"Date", "Votes", "Comments"})
	for _, d := range data.Engagement.DailyEngagement {
		records = append(records, []string{d.Date, strconv.Itoa(d.Votes), strconv.Itoa(d.Comments)})
	}

	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
