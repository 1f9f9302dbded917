// Package models holds the records of the fashion platform the admin dashboard manages,
// the shapes its reports are returned in, and the errors shared by every layer.
package models

// User is a registered member of the platform.
type User struct {
	ID               int        `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	RegistrationDate string     `json:"registrationDate"` // YYYY-MM-DD
	LastLogin        string     `json:"lastLogin"`        // YYYY-MM-DD
	Status           UserStatus `json:"status"`
	Uploads          int        `json:"uploads"`
	Polls            int        `json:"polls"`
	TotalVotes       int        `json:"totalVotes"`
	ProfileImage     string     `json:"profileImage"`
}

// UserActivity is the engagement summary of a single user.
type UserActivity struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Uploads    int    `json:"uploads"`
	Polls      int    `json:"polls"`
	TotalVotes int    `json:"totalVotes"`
	LastLogin  string `json:"lastLogin"`
}

// UserStatistics aggregates the user table.
type UserStatistics struct {
	TotalUsers            int     `json:"totalUsers"`
	ActiveUsers           int     `json:"activeUsers"`
	InactiveUsers         int     `json:"inactiveUsers"`
	SuspendedUsers        int     `json:"suspendedUsers"`
	TotalUploads          int     `json:"totalUploads"`
	TotalPolls            int     `json:"totalPolls"`
	TotalVotes            int     `json:"totalVotes"`
	AverageUploadsPerUser Decimal `json:"averageUploadsPerUser"`
	AveragePollsPerUser   Decimal `json:"averagePollsPerUser"`
}
