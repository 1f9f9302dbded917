package models

// DailyLogin counts the logins of one day.
type DailyLogin struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklyLogin counts the logins of one week.
type WeeklyLogin struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// UserActivityTrends holds login history at both granularities.
type UserActivityTrends struct {
	DailyLogins  []DailyLogin  `json:"dailyLogins"`
	WeeklyLogins []WeeklyLogin `json:"weeklyLogins"`
}

// ClosetUpload is the number of closet items a user uploaded.
type ClosetUpload struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
	Uploads  int    `json:"uploads"`
}

// DailyEngagement counts the votes and comments of one day.
type DailyEngagement struct {
	Date     string `json:"date"`
	Votes    int    `json:"votes"`
	Comments int    `json:"comments"`
}

// Engagement holds the voting and commenting totals.
type Engagement struct {
	TotalVotes          int               `json:"totalVotes"`
	TotalPolls          int               `json:"totalPolls"`
	TotalComments       int               `json:"totalComments"`
	AverageVotesPerPoll float64           `json:"averageVotesPerPoll"`
	DailyEngagement     []DailyEngagement `json:"dailyEngagement"`
}

// MonthlyRevenue is one month of platform income split by source.
type MonthlyRevenue struct {
	Month        string  `json:"month"`
	Subscription float64 `json:"subscription"`
	Ads          float64 `json:"ads"`
	Total        float64 `json:"total"`
}

// Revenue holds the platform income totals.
type Revenue struct {
	TotalRevenue        float64          `json:"totalRevenue"`
	SubscriptionRevenue float64          `json:"subscriptionRevenue"`
	AdRevenue           float64          `json:"adRevenue"`
	MonthlyBreakdown    []MonthlyRevenue `json:"monthlyBreakdown"`
}

// Stats is the aggregate analytics snapshot.
type Stats struct {
	UserActivity  UserActivityTrends `json:"userActivity"`
	ClosetUploads []ClosetUpload     `json:"closetUploads"`
	Engagement    Engagement         `json:"engagement"`
	Revenue       Revenue            `json:"revenue"`
}

// SummaryStats is the headline figure set of the dashboard.
type SummaryStats struct {
	TotalUsers          int     `json:"totalUsers"`
	TotalPolls          int     `json:"totalPolls"`
	TotalVotes          int     `json:"totalVotes"`
	TotalComments       int     `json:"totalComments"`
	AverageVotesPerPoll float64 `json:"averageVotesPerPoll"`
	TotalRevenue        float64 `json:"totalRevenue"`
	SubscriptionRevenue float64 `json:"subscriptionRevenue"`
	AdRevenue           float64 `json:"adRevenue"`
}

// Growth holds the latest growth rates of the daily series.
type Growth struct {
	Logins     Decimal `json:"logins"`
	Engagement Decimal `json:"engagement"`
}

// QuickStats are the cards at the top of the dashboard.
type QuickStats struct {
	TodayLogins  int     `json:"todayLogins"`
	TotalRevenue float64 `json:"totalRevenue"`
	ActiveUsers  int     `json:"activeUsers"`
	TotalPolls   int     `json:"totalPolls"`
}

// DashboardOverview is the landing report of the dashboard.
type DashboardOverview struct {
	Summary    SummaryStats `json:"summary"`
	Growth     Growth       `json:"growth"`
	QuickStats QuickStats   `json:"quickStats"`
}

// EngagementAverages are the rounded daily means.
type EngagementAverages struct {
	DailyVotes    int `json:"dailyVotes"`
	DailyComments int `json:"dailyComments"`
}

// EngagementReport extends Engagement with daily averages.
type EngagementReport struct {
	Engagement
	Averages    EngagementAverages `json:"averages"`
	DailyTrends []DailyEngagement  `json:"dailyTrends"`
}

// ClosetUploadStats summarises closet uploads.
type ClosetUploadStats struct {
	TotalUploads   int            `json:"totalUploads"`
	AverageUploads Decimal        `json:"averageUploads"`
	TopUsers       []ClosetUpload `json:"topUsers"`
	AllUsers       []ClosetUpload `json:"allUsers"`
}

// RevenueShares splits revenue by source in percent.
type RevenueShares struct {
	Subscription Decimal `json:"subscription"`
	Ads          Decimal `json:"ads"`
}

// RevenueAnalytics extends Revenue with shares and growth.
type RevenueAnalytics struct {
	Revenue
	Percentages RevenueShares `json:"percentages"`
	Growth      Decimal       `json:"growth"`
}

// RangeSummary totals the activity within a date range.
type RangeSummary struct {
	TotalLogins            int     `json:"totalLogins"`
	TotalVotes             int     `json:"totalVotes"`
	TotalComments          int     `json:"totalComments"`
	AverageDailyLogins     Decimal `json:"averageDailyLogins"`
	AverageDailyEngagement Decimal `json:"averageDailyEngagement"`
}

// RangeStats is the activity within a date range.
type RangeStats struct {
	UserActivity []DailyLogin      `json:"userActivity"`
	Engagement   []DailyEngagement `json:"engagement"`
	Summary      RangeSummary      `json:"summary"`
}

// RealTimeStats are today's figures.
type RealTimeStats struct {
	TodayLogins          int    `json:"todayLogins"`
	TodayVotes           int    `json:"todayVotes"`
	TodayComments        int    `json:"todayComments"`
	TotalTodayEngagement int    `json:"totalTodayEngagement"`
	LastUpdated          string `json:"lastUpdated"`
}

// Change compares the latest point of a series with the previous one.
type Change struct {
	Current          int     `json:"current"`
	Previous         int     `json:"previous"`
	Change           int     `json:"change"`
	ChangePercentage Decimal `json:"changePercentage"`
}

// ComparativeAnalytics compares the two most recent days.
type ComparativeAnalytics struct {
	Logins   Change `json:"logins"`
	Votes    Change `json:"votes"`
	Comments Change `json:"comments"`
}

// StatsExport is the full snapshot handed out by the export endpoint.
type StatsExport struct {
	UserActivity  UserActivityTrends `json:"userActivity"`
	Engagement    Engagement         `json:"engagement"`
	ClosetUploads []ClosetUpload     `json:"closetUploads"`
	Revenue       Revenue            `json:"revenue"`
	Summary       SummaryStats       `json:"summary"`
	ExportDate    string             `json:"exportDate"`
}

// LoginPoint is one point of a login series; Label is a date or a week name.
type LoginPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LoginTrend is the login series at one granularity.
type LoginTrend struct {
	Period Period       `json:"period"`
	Points []LoginPoint `json:"points"`
}
