package memory

import (
	"time"

	"github.com/magabrotheeeer/fashion-admin/internal/models"
)

// Seed is the initial content of a Store.
type Seed struct {
	Users         []models.User
	Content       []models.Content
	Subscriptions []models.Subscription
	Settings      models.SubscriptionSettings
	Stats         models.Stats

	Templates             []models.PromptTemplate
	NotificationTemplates []models.NotificationTemplate
}

const placeholderImage = "https://via.placeholder.com/50"

// DefaultSeed returns the fixture data set the dashboard ships with.
func DefaultSeed() Seed {
	return Seed{
		Users: []models.User{
			{ID: 1, Username: "fashionista_jane", Email: "jane@example.com", RegistrationDate: "2024-01-15", LastLogin: "2024-12-20", Status: models.UserActive, Uploads: 23, Polls: 12, TotalVotes: 145, ProfileImage: placeholderImage},
			{ID: 2, Username: "style_guru_alex", Email: "alex@example.com", RegistrationDate: "2024-02-20", LastLogin: "2024-12-19", Status: models.UserActive, Uploads: 18, Polls: 8, TotalVotes: 89, ProfileImage: placeholderImage},
			{ID: 3, Username: "trendy_sarah", Email: "sarah@example.com", RegistrationDate: "2024-03-10", LastLogin: "2024-12-18", Status: models.UserInactive, Uploads: 31, Polls: 15, TotalVotes: 203, ProfileImage: placeholderImage},
			{ID: 4, Username: "fashion_mike", Email: "mike@example.com", RegistrationDate: "2024-04-05", LastLogin: "2024-12-21", Status: models.UserSuspended, Uploads: 7, Polls: 3, TotalVotes: 25, ProfileImage: placeholderImage},
			{ID: 5, Username: "outfit_queen", Email: "queen@example.com", RegistrationDate: "2024-05-12", LastLogin: "2024-12-20", Status: models.UserActive, Uploads: 45, Polls: 22, TotalVotes: 312, ProfileImage: placeholderImage},
		},
		Content: []models.Content{
			{ID: 1, Type: models.ContentPoll, Title: "Summer vs Winter Fashion", Content: "Which season has better fashion trends?", UserID: 1, Username: "fashionista_jane", CreatedDate: "2024-12-20", Status: models.ContentApproved, Reports: 0, Votes: 45, Category: "seasonal"},
			{ID: 2, Type: models.ContentComment, Title: "Inappropriate comment on fashion poll", Content: "This is an offensive comment that needs review", UserID: 4, Username: "fashion_mike", CreatedDate: "2024-12-19", Status: models.ContentFlagged, Reports: 3, Votes: 0, Category: "comment"},
			{ID: 3, Type: models.ContentPoll, Title: "Best Casual Outfit", Content: "Vote for the best casual weekend outfit", UserID: 3, Username: "trendy_sarah", CreatedDate: "2024-12-18", Status: models.ContentApproved, Reports: 0, Votes: 78, Category: "casual"},
			{ID: 4, Type: models.ContentPoll, Title: "Designer vs Budget Fashion", Content: "Quality comparison between designer and budget clothing", UserID: 5, Username: "outfit_queen", CreatedDate: "2024-12-17", Status: models.ContentPending, Reports: 1, Votes: 23, Category: "comparison"},
		},
		Subscriptions: []models.Subscription{
			{ID: 1, UserID: 1, Username: "fashionista_jane", Email: "jane@example.com", Plan: models.PlanMonthly, Amount: 9.99, StartDate: "2024-11-15", EndDate: "2024-12-15", Status: models.SubscriptionActive, PaymentMethod: "Credit Card", RenewalDate: "2024-12-15"},
			{ID: 2, UserID: 3, Username: "trendy_sarah", Email: "sarah@example.com", Plan: models.PlanAnnual, Amount: 99.99, StartDate: "2024-06-10", EndDate: "2025-06-10", Status: models.SubscriptionActive, PaymentMethod: "PayPal", RenewalDate: "2025-06-10"},
			{ID: 3, UserID: 5, Username: "outfit_queen", Email: "queen@example.com", Plan: models.PlanMonthly, Amount: 9.99, StartDate: "2024-12-01", EndDate: "2025-01-01", Status: models.SubscriptionActive, PaymentMethod: "Credit Card", RenewalDate: "2025-01-01"},
			{ID: 4, UserID: 2, Username: "style_guru_alex", Email: "alex@example.com", Plan: models.PlanMonthly, Amount: 9.99, StartDate: "2024-10-20", EndDate: "2024-11-20", Status: models.SubscriptionExpired, PaymentMethod: "Credit Card", RenewalDate: "2024-11-20"},
		},
		Settings: models.SubscriptionSettings{
			MonthlyPrice: 9.99,
			AnnualPrice:  99.99,
			AdminAccount: models.AdminAccount{
				Email:       "admin@fashionapp.com",
				Name:        "Fashion App Admin",
				LastUpdated: "2024-12-01",
			},
			Earnings: models.Earnings{
				Total: 12350.00,
				Monthly: []models.MonthlyEarning{
					{Date: "2024-01", Amount: 2100.00, Subscribers: 210},
					{Date: "2024-02", Amount: 2300.00, Subscribers: 230},
					{Date: "2024-03", Amount: 2450.00, Subscribers: 245},
					{Date: "2024-04", Amount: 2650.00, Subscribers: 265},
					{Date: "2024-05", Amount: 2850.00, Subscribers: 285},
				},
			},
		},
		Stats: models.Stats{
			UserActivity: models.UserActivityTrends{
				DailyLogins: []models.DailyLogin{
					{Date: "2024-12-15", Count: 125},
					{Date: "2024-12-16", Count: 143},
					{Date: "2024-12-17", Count: 156},
					{Date: "2024-12-18", Count: 134},
					{Date: "2024-12-19", Count: 167},
					{Date: "2024-12-20", Count: 189},
					{Date: "2024-12-21", Count: 201},
				},
				WeeklyLogins: []models.WeeklyLogin{
					{Week: "Week 1", Count: 890},
					{Week: "Week 2", Count: 923},
					{Week: "Week 3", Count: 1045},
					{Week: "Week 4", Count: 1123},
				},
			},
			ClosetUploads: []models.ClosetUpload{
				{UserID: 1, Username: "fashionista_jane", Uploads: 23},
				{UserID: 2, Username: "style_guru_alex", Uploads: 18},
				{UserID: 3, Username: "trendy_sarah", Uploads: 31},
				{UserID: 4, Username: "fashion_mike", Uploads: 7},
				{UserID: 5, Username: "outfit_queen", Uploads: 45},
			},
			Engagement: models.Engagement{
				TotalVotes:          1247,
				TotalPolls:          89,
				TotalComments:       456,
				AverageVotesPerPoll: 14.2,
				DailyEngagement: []models.DailyEngagement{
					{Date: "2024-12-15", Votes: 45, Comments: 23},
					{Date: "2024-12-16", Votes: 67, Comments: 34},
					{Date: "2024-12-17", Votes: 52, Comments: 28},
					{Date: "2024-12-18", Votes: 78, Comments: 41},
					{Date: "2024-12-19", Votes: 89, Comments: 52},
					{Date: "2024-12-20", Votes: 94, Comments: 38},
					{Date: "2024-12-21", Votes: 103, Comments: 47},
				},
			},
			Revenue: models.Revenue{
				TotalRevenue:        15847.50,
				SubscriptionRevenue: 12350.00,
				AdRevenue:           3497.50,
				MonthlyBreakdown: []models.MonthlyRevenue{
					{Month: "January", Subscription: 2100, Ads: 450, Total: 2550},
					{Month: "February", Subscription: 2300, Ads: 520, Total: 2820},
					{Month: "March", Subscription: 2450, Ads: 580, Total: 3030},
					{Month: "April", Subscription: 2650, Ads: 620, Total: 3270},
				},
			},
		},
		Templates: []models.PromptTemplate{
			{ID: 1, Title: "Casual Day Out", Category: models.TemplateOccasion, Text: "Create a casual outfit for a relaxed day out with friends", Active: true, CreatedBy: "admin", CreatedAt: seedTime(1), UpdatedAt: seedTime(1), UsageCount: 34},
			{ID: 2, Title: "Rainy Weather", Category: models.TemplateWeather, Text: "Suggest clothes for rainy weather that still look stylish", Active: true, CreatedBy: "admin", CreatedAt: seedTime(2), UpdatedAt: seedTime(2), UsageCount: 21},
			{ID: 3, Title: "Happy Mood", Category: models.TemplateMood, Text: "Bright and cheerful outfit ideas for a good mood", Active: true, CreatedBy: "admin", CreatedAt: seedTime(3), UpdatedAt: seedTime(3), UsageCount: 12},
		},
		NotificationTemplates: []models.NotificationTemplate{
			{ID: 1, Name: "Weekly Challenge", Title: "New Weekly Challenge!", Body: "Check out this week's {challenge_type} challenge", Category: "engagement"},
			{ID: 2, Name: "Poll Results", Title: "Your Poll Results", Body: "See who voted on your latest outfit poll", Category: "user_activity"},
			{ID: 3, Name: "Subscription Reminder", Title: "Premium Features Awaiting!", Body: "Upgrade to premium for unlimited polls and AI recommendations", Category: "subscription"},
		},
	}
}

func seedTime(day int) time.Time {
	return time.Date(2024, 12, day, 9, 0, 0, 0, time.UTC)
}
