package models

// Subscription is a paid plan held by a platform user.
type Subscription struct {
	ID            int                `json:"id"`
	UserID        int                `json:"userId"`
	Username      string             `json:"username"`
	Email         string             `json:"email"`
	Plan          SubscriptionPlan   `json:"plan"`
	Amount        float64            `json:"amount"`
	StartDate     string             `json:"startDate"`
	EndDate       string             `json:"endDate"`
	Status        SubscriptionStatus `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	RenewalDate   string             `json:"renewalDate"`
}

// AdminAccount is the account subscription payouts are credited to.
type AdminAccount struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	LastUpdated string `json:"lastUpdated"`
}

// MonthlyEarning is one month of subscription income. Date is YYYY-MM.
type MonthlyEarning struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Subscribers int     `json:"subscribers"`
}

// Earnings is the subscription income history.
type Earnings struct {
	Total   float64          `json:"total"`
	Monthly []MonthlyEarning `json:"monthly"`
}

// SubscriptionSettings holds plan pricing, the payout account and the earnings history.
type SubscriptionSettings struct {
	MonthlyPrice float64      `json:"monthlyPrice"`
	AnnualPrice  float64      `json:"annualPrice"`
	AdminAccount AdminAccount `json:"adminAccount"`
	Earnings     Earnings     `json:"earnings"`
}

// Pricing is the price pair of both plans.
type Pricing struct {
	MonthlyPrice float64 `json:"monthlyPrice"`
	AnnualPrice  float64 `json:"annualPrice"`
}

// SubscriptionStats counts subscriptions by status and plan.
type SubscriptionStats struct {
	Total          int     `json:"total"`
	Active         int     `json:"active"`
	Expired        int     `json:"expired"`
	Cancelled      int     `json:"cancelled"`
	Monthly        int     `json:"monthly"`
	Annual         int     `json:"annual"`
	TotalRevenue   float64 `json:"totalRevenue"`
	ConversionRate Decimal `json:"conversionRate"`
}

// SubscriptionStatistics extends SubscriptionStats with current pricing.
type SubscriptionStatistics struct {
	SubscriptionStats
	MonthlyPrice            float64 `json:"monthlyPrice"`
	AnnualPrice             float64 `json:"annualPrice"`
	ProjectedMonthlyRevenue float64 `json:"projectedMonthlyRevenue"`
}

// EarningsReport is the earnings history with the latest month-over-month growth.
type EarningsReport struct {
	Earnings
	MonthlyBreakdown []MonthlyEarning `json:"monthlyBreakdown"`
	GrowthRate       Decimal          `json:"growthRate"`
}

// AmountSummary summarises the amounts of a set of subscriptions.
type AmountSummary struct {
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount Decimal `json:"averageAmount"`
}

// SubscriptionRange is the set of subscriptions started within a date range.
type SubscriptionRange struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Summary       AmountSummary  `json:"summary"`
}

// ExpiringSubscriptions lists active subscriptions ending within a week.
type ExpiringSubscriptions struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Count         int            `json:"count"`
	UrgentCount   int            `json:"urgentCount"`
}

// SubscriptionFinancials holds the recurring revenue figures.
type SubscriptionFinancials struct {
	TotalEarnings    float64 `json:"totalEarnings"`
	MonthlyRecurring float64 `json:"monthlyRecurring"`
	AnnualRecurring  float64 `json:"annualRecurring"`
}

// SubscriptionMetrics holds retention-related ratios.
type SubscriptionMetrics struct {
	RetentionRate     Decimal `json:"retentionRate"`
	ChurnRate         Decimal `json:"churnRate"`
	ConversionRate    Decimal `json:"conversionRate"`
	ExpiringSoonCount int     `json:"expiringSoonCount"`
}

// SubscriptionAnalytics is the full subscription report.
type SubscriptionAnalytics struct {
	Overview   SubscriptionStats      `json:"overview"`
	Financials SubscriptionFinancials `json:"financials"`
	Metrics    SubscriptionMetrics    `json:"metrics"`
	Trends     []MonthlyEarning       `json:"trends"`
}

// ForecastMonth is the projected revenue of one future month.
type ForecastMonth struct {
	Month            string  `json:"month"` // YYYY-MM
	ProjectedRevenue float64 `json:"projectedRevenue"`
	MonthlyPlan      float64 `json:"monthlyPlan"`
	AnnualPlan       float64 `json:"annualPlan"`
}

// ForecastAssumptions records the inputs a forecast was computed from.
type ForecastAssumptions struct {
	ActiveMonthlySubscriptions int     `json:"activeMonthlySubscriptions"`
	ActiveAnnualSubscriptions  int     `json:"activeAnnualSubscriptions"`
	MonthlyPrice               float64 `json:"monthlyPrice"`
	AnnualPrice                float64 `json:"annualPrice"`
}

// RevenueForecast holds the current active mix projected over future months.
type RevenueForecast struct {
	CurrentMonthlyRevenue float64             `json:"currentMonthlyRevenue"`
	Forecast              []ForecastMonth     `json:"forecast"`
	Assumptions           ForecastAssumptions `json:"assumptions"`
}
