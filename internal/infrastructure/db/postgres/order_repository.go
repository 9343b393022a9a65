package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// OrderRepository persists token purchase orders in Postgres.
type OrderRepository struct {
	db *bun.DB
}

func NewOrderRepository(db *bun.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.TokenOrder) error {
	row := &orderRow{
		ID:          o.ID,
		UserID:      o.UserID,
		Kind:        string(o.Kind),
		Quantity:    o.Quantity,
		AmountPaise: o.AmountPaise,
		OrderRef:    o.OrderRef,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
	if _, err := r.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByOrderRef(ctx context.Context, orderRef string) (*domain.TokenOrder, error) {
	row := new(orderRow)
	err := r.db.NewSelect().Model(row).Where("order_ref = ?", orderRef).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return row.toDomain(), nil
}
