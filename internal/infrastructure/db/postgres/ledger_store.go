package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// LedgerStore implements the atomic balance operations over Postgres.
// Concurrent debits against the same user row serialize at the conditional
// UPDATE: the row lock taken by the first transaction makes the second one
// re-evaluate balance >= cost after commit, so the non-negative invariant
// holds without any in-process locking.
type LedgerStore struct {
	db *bun.DB
}

func NewLedgerStore(db *bun.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) DebitForAction(ctx context.Context, userID string, kind domain.BalanceKind, cost int, action func(ctx context.Context, tx bun.IDB) error) error {
	if cost < 0 {
		return fmt.Errorf("ledger: negative cost %d", cost)
	}
	col := kind.Column()

	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*userRow)(nil)).
			Set("? = ? - ?", bun.Ident(col), bun.Ident(col), cost).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id = ?", userID).
			Where("? >= ?", bun.Ident(col), cost).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("debit %s: %w", kind, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Either the user is gone or the balance is short. Distinguish
			// so a missing account does not read as an empty wallet.
			exists, err := tx.NewSelect().Model((*userRow)(nil)).Where("id = ?", userID).Exists(ctx)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrUserNotFound
			}
			return domain.ErrInsufficientTokens
		}

		// The dependent business write shares the transaction: both become
		// durable together or neither does.
		return action(ctx, tx)
	})
}

func (s *LedgerStore) CreditFromOrder(ctx context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error) {
	var captured *domain.TokenOrder

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		row := new(orderRow)
		err := tx.NewSelect().Model(row).Where("order_ref = ?", orderRef).For("UPDATE").Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("find order: %w", err)
		}

		now := time.Now().UTC()
		res, err := tx.NewUpdate().
			Model((*orderRow)(nil)).
			Set("status = ?", string(domain.OrderCaptured)).
			Set("payment_ref = ?", paymentRef).
			Set("captured_at = ?", now).
			Where("order_ref = ?", orderRef).
			Where("status = ?", string(domain.OrderCreated)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("capture order: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			// Already captured: replaying the same confirmed payment must
			// not double-credit.
			return domain.ErrDuplicatePayment
		}

		col := domain.BalanceKind(row.Kind).Column()
		if _, err := tx.NewUpdate().
			Model((*userRow)(nil)).
			Set("? = ? + ?", bun.Ident(col), bun.Ident(col), row.Quantity).
			Set("updated_at = ?", now).
			Where("id = ?", row.UserID).
			Exec(ctx); err != nil {
			return fmt.Errorf("credit %s: %w", row.Kind, err)
		}

		row.Status = string(domain.OrderCaptured)
		row.PaymentRef = paymentRef
		row.CapturedAt = &now
		captured = row.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return captured, nil
}
