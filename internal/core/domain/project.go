package domain

import "time"

// ProjectStatus represents the lifecycle state of a project listing.
type ProjectStatus string

const (
	ProjectOpen   ProjectStatus = "open"
	ProjectClosed ProjectStatus = "closed"
)

// Project is a client's work listing that developers bid on.
type Project struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	BudgetUSD   int           `json:"budget_usd"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BidStatus represents the lifecycle state of a bid.
type BidStatus string

const (
	BidOpen      BidStatus = "open"
	BidWithdrawn BidStatus = "withdrawn"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
)

// Bid is a developer's offer on a project. At most one open bid may exist
// per (developer, project) pair.
type Bid struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	DeveloperID string    `json:"developer_id"`
	AmountUSD   int       `json:"amount_usd"`
	Pitch       string    `json:"pitch"`
	Status      BidStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
