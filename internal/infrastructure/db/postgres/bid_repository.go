package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// BidRepository persists bids in Postgres. A partial unique index on
// (project_id, developer_id) where status = 'open' backs the one-open-bid
// rule against races the service-level check cannot see.
type BidRepository struct {
	db *bun.DB
}

func NewBidRepository(db *bun.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, db bun.IDB, b *domain.Bid) error {
	if db == nil {
		db = r.db
	}
	row := &bidRow{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		DeveloperID: b.DeveloperID,
		AmountUSD:   b.AmountUSD,
		Pitch:       b.Pitch,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAction
		}
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	row := new(bidRow)
	err := r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("find bid: %w", err)
	}
	return row.toDomain(), nil
}

func (r *BidRepository) HasOpenBid(ctx context.Context, projectID, developerID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*bidRow)(nil)).
		Where("project_id = ?", projectID).
		Where("developer_id = ?", developerID).
		Where("status = ?", string(domain.BidOpen)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check open bid: %w", err)
	}
	return exists, nil
}

func (r *BidRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Bid, error) {
	var rows []bidRow
	err := r.db.NewSelect().
		Model(&rows).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	bids := make([]*domain.Bid, 0, len(rows))
	for i := range rows {
		bids = append(bids, rows[i].toDomain())
	}
	return bids, nil
}

func (r *BidRepository) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) error {
	res, err := r.db.NewUpdate().
		Model((*bidRow)(nil)).
		Set("status = ?", string(status)).
		Where("id = ?", id).
		Where("status = ?", string(domain.BidOpen)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update bid status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}
