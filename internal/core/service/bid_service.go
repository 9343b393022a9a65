package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// BidService implements bidding use-cases. Placing a bid is gated by the
// developer's bid token balance.
type BidService struct {
	bids     ports.BidRepository
	projects ports.ProjectRepository
	ledger   ports.LedgerService
	cost     int
	log      zerolog.Logger
}

func NewBidService(bids ports.BidRepository, projects ports.ProjectRepository, ledger ports.LedgerService, cost int, log zerolog.Logger) *BidService {
	if cost <= 0 {
		cost = 1
	}
	return &BidService{bids: bids, projects: projects, ledger: ledger, cost: cost, log: log}
}

// Place creates a bid. The ownership and duplicate checks run strictly
// before the balance check, so a rejected bid never reads as an empty
// wallet. The insert shares the debit transaction.
func (s *BidService) Place(ctx context.Context, in ports.PlaceBidInput) (*domain.Bid, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Status != domain.ProjectOpen {
		return nil, domain.ErrProjectClosed
	}
	if project.OwnerID == in.DeveloperID {
		return nil, domain.ErrSelfActionForbidden
	}

	exists, err := s.bids.HasOpenBid(ctx, in.ProjectID, in.DeveloperID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAction
	}

	bid := &domain.Bid{
		ID:          uuid.NewString(),
		ProjectID:   in.ProjectID,
		DeveloperID: in.DeveloperID,
		AmountUSD:   in.AmountUSD,
		Pitch:       in.Pitch,
		Status:      domain.BidOpen,
		CreatedAt:   time.Now().UTC(),
	}

	err = s.ledger.DebitForAction(ctx, in.DeveloperID, domain.BalanceBid, s.cost, func(ctx context.Context, tx bun.IDB) error {
		return s.bids.Create(ctx, tx, bid)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("bid_id", bid.ID).
		Str("project_id", in.ProjectID).
		Str("developer_id", in.DeveloperID).
		Msg("bid placed")
	return bid, nil
}

// ListByProject returns the project's bids. Only the owner or an admin may
// see them.
func (s *BidService) ListByProject(ctx context.Context, projectID string, caller *domain.Identity) ([]*domain.Bid, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && project.OwnerID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return s.bids.ListByProject(ctx, projectID)
}

// Withdraw retracts an open bid. Spent tokens are not refunded.
func (s *BidService) Withdraw(ctx context.Context, bidID, callerID string) error {
	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return err
	}
	if bid.DeveloperID != callerID {
		return domain.ErrForbidden
	}
	return s.bids.UpdateStatus(ctx, bidID, domain.BidWithdrawn)
}

// Decide accepts or rejects an open bid; only the project owner may decide.
func (s *BidService) Decide(ctx context.Context, bidID, callerID string, accept bool) error {
	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return err
	}
	project, err := s.projects.FindByID(ctx, bid.ProjectID)
	if err != nil {
		return err
	}
	if project.OwnerID != callerID {
		return domain.ErrForbidden
	}

	status := domain.BidRejected
	if accept {
		status = domain.BidAccepted
	}
	return s.bids.UpdateStatus(ctx, bidID, status)
}
