package ports

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// LedgerStore is the storage-level atomic balance primitive. Both operations
// run as a single transaction; serialization of concurrent debits against
// the same row is delegated to the database.
type LedgerStore interface {
	// DebitForAction decrements the balance by cost and runs action inside
	// the same transaction. The decrement is a conditional update that only
	// matches when balance >= cost; zero affected rows aborts the
	// transaction with domain.ErrInsufficientTokens and action is never
	// called. An error from action rolls the decrement back.
	DebitForAction(ctx context.Context, userID string, kind domain.BalanceKind, cost int, action func(ctx context.Context, tx bun.IDB) error) error

	// CreditFromOrder captures the order identified by orderRef and credits
	// its quantity to the owning user, atomically. The capture is a
	// conditional status update (created → captured) keyed on orderRef, so a
	// replayed confirmation fails with domain.ErrDuplicatePayment without
	// touching the balance. Returns the captured order.
	CreditFromOrder(ctx context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error)
}

// LedgerService wraps LedgerStore with the mandatory snapshot invalidation
// that must follow every balance mutation.
type LedgerService interface {
	DebitForAction(ctx context.Context, userID string, kind domain.BalanceKind, cost int, action func(ctx context.Context, tx bun.IDB) error) error
	CreditFromPayment(ctx context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error)
}

// SnapshotCache is the TTL'd key-value store for authorization snapshots.
// Get returns (nil, nil) on a miss.
type SnapshotCache interface {
	Get(ctx context.Context, userID string) (*domain.Snapshot, error)
	Set(ctx context.Context, snap *domain.Snapshot) error
	Invalidate(ctx context.Context, userID string) error
}

// PaymentDedup is the fast-path replay check for payment references. The
// database conditional update remains the authority; this only short-cuts
// obvious webhook redeliveries.
type PaymentDedup interface {
	Seen(ctx context.Context, paymentRef string) (bool, error)
	Mark(ctx context.Context, paymentRef string) error
}
