package ports

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// UserRepository defines persistence operations for application accounts.
// Lookups are by primary key only; email is a display attribute.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error
	// UpdateVerificationStatus applies the transition conditionally: the row
	// is only updated when its current status equals from. Zero rows means
	// the stored status changed underneath the caller.
	UpdateVerificationStatus(ctx context.Context, id string, from, to domain.VerificationStatus) error
}

// ProjectRepository defines persistence operations for project listings.
type ProjectRepository interface {
	// Create inserts the project. When db is non-nil the insert runs on that
	// transaction handle, so the write commits or rolls back with the debit.
	Create(ctx context.Context, db bun.IDB, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int, error)
	Close(ctx context.Context, id string) error
}

// ListProjectsFilter carries query parameters for listing projects.
type ListProjectsFilter struct {
	OwnerID string // empty = all owners
	Status  string // empty = all statuses
	Page    int    // 1-based
	Limit   int    // capped by the service
}

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	Create(ctx context.Context, db bun.IDB, b *domain.Bid) error
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	// HasOpenBid reports whether developerID already has an open bid on the
	// project.
	HasOpenBid(ctx context.Context, projectID, developerID string) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Bid, error)
	UpdateStatus(ctx context.Context, id string, status domain.BidStatus) error
}

// OrderRepository defines persistence operations for token purchase orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.TokenOrder) error
	FindByOrderRef(ctx context.Context, orderRef string) (*domain.TokenOrder, error)
}

// ConversationRepository defines persistence operations for message threads.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	// FindOpen returns the existing conversation for the (project, client,
	// developer) triple, or domain.ErrConversationNotFound.
	FindOpen(ctx context.Context, projectID, clientID, developerID string) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error)
	AppendMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]*domain.Message, error)
}
