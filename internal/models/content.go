package models

// Content is a user-generated poll or comment subject to moderation.
type Content struct {
	ID          int           `json:"id"`
	Type        ContentType   `json:"type"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	UserID      int           `json:"userId"`
	Username    string        `json:"username"`
	CreatedDate string        `json:"createdDate"` // YYYY-MM-DD
	Status      ContentStatus `json:"status"`
	Reports     int           `json:"reports"`
	Votes       int           `json:"votes"`
	Category    string        `json:"category"`
}

// FlagThreshold is the report count at which content is flagged automatically.
const FlagThreshold = 3

// ContentStatistics aggregates the content table.
type ContentStatistics struct {
	Total             int     `json:"total"`
	Approved          int     `json:"approved"`
	Flagged           int     `json:"flagged"`
	Pending           int     `json:"pending"`
	Rejected          int     `json:"rejected"`
	TotalReports      int     `json:"totalReports"`
	TotalVotes        int     `json:"totalVotes"`
	FlaggedPercentage Decimal `json:"flaggedPercentage"`
	ApprovalRate      Decimal `json:"approvalRate"`
}

// ContentTrend counts the content created on one day.
type ContentTrend struct {
	Date     string `json:"date"`
	Polls    int    `json:"polls"`
	Comments int    `json:"comments"`
	Total    int    `json:"total"`
}
