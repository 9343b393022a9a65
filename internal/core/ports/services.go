package ports

import (
	"context"
	"time"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// CreateProjectInput carries all data needed to post a new project.
type CreateProjectInput struct {
	OwnerID     string
	Title       string
	Description string
	BudgetUSD   int
}

// ListProjectsInput carries parameters for the project list endpoint.
type ListProjectsInput struct {
	OwnerID string
	Status  string
	Page    int
	Limit   int
}

// ListProjectsResult is a page of projects.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for project listings.
type ProjectService interface {
	// Create posts a new listing, debiting the owner's project tokens.
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, in ListProjectsInput) (*ListProjectsResult, error)
	// Close marks the project closed; only the owner or an admin may close it.
	Close(ctx context.Context, id string, caller *domain.Identity) error
}

// PlaceBidInput carries all data needed to bid on a project.
type PlaceBidInput struct {
	ProjectID   string
	DeveloperID string
	AmountUSD   int
	Pitch       string
}

// BidService defines use-case operations for bids.
type BidService interface {
	// Place creates a bid, debiting the developer's bid tokens. Ownership
	// and duplicate checks run before any balance check.
	Place(ctx context.Context, in PlaceBidInput) (*domain.Bid, error)
	// ListByProject returns the project's bids to its owner or an admin.
	ListByProject(ctx context.Context, projectID string, caller *domain.Identity) ([]*domain.Bid, error)
	Withdraw(ctx context.Context, bidID, callerID string) error
	// Decide accepts or rejects an open bid; only the project owner may decide.
	Decide(ctx context.Context, bidID, callerID string, accept bool) error
}

// CreateOrderInput carries a token purchase request. Quantity and price are
// resolved server-side from the package name.
type CreateOrderInput struct {
	UserID  string
	Kind    domain.BalanceKind
	Package string
}

// CreateOrderResult is returned to the client to drive the checkout flow.
type CreateOrderResult struct {
	OrderRef    string
	Quantity    int
	AmountPaise int
	Currency    string
}

// PaymentProof is the (order, payment, signature) triple returned by the
// gateway checkout.
type PaymentProof struct {
	OrderRef   string
	PaymentRef string
	Signature  string
}

// PaymentService defines the token purchase flow.
type PaymentService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error)
	// Confirm verifies the proof signature and credits the order exactly
	// once. Verification happens strictly before any ledger mutation.
	Confirm(ctx context.Context, userID string, proof PaymentProof) (*domain.TokenOrder, error)
	// ProcessCapture applies a gateway webhook capture. Idempotent per
	// payment reference.
	ProcessCapture(ctx context.Context, ev PaymentCaptureEvent) error
}

// PaymentCaptureEvent is a payment.captured notification from the gateway
// webhook, dispatched to sharded workers keyed by user id.
type PaymentCaptureEvent struct {
	UserID     string
	OrderRef   string
	PaymentRef string
	ReceivedAt time.Time
}

// VerificationService drives the user trust-tier workflow.
type VerificationService interface {
	// Request moves the caller from unverified to requested.
	Request(ctx context.Context, userID string) error
	// Decide moves a requested user to verified (approve) or back to
	// unverified (reject). Admin only — enforced at the route.
	Decide(ctx context.Context, userID string, approve bool) error
}

// UpdateProfileInput carries profile mutations.
type UpdateProfileInput struct {
	DisplayName string
	AvatarURL   string
}

// ProfileService serves and mutates user-facing profile data.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Snapshot, error)
	Update(ctx context.Context, userID string, in UpdateProfileInput) error
}

// StartConversationInput opens a message thread about a project. The client
// side is always resolved from the project owner.
type StartConversationInput struct {
	ProjectID string
	// DeveloperID is the counterparty when the client starts the thread;
	// a developer starting the thread becomes the developer side.
	DeveloperID string
}

// ConversationService defines messaging use-cases.
type ConversationService interface {
	Start(ctx context.Context, callerID string, in StartConversationInput) (*domain.Conversation, error)
	Send(ctx context.Context, conversationID, senderID, body string) (*domain.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
	Messages(ctx context.Context, conversationID, callerID string) ([]*domain.Message, error)
}
