package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// LedgerService wraps the storage-level ledger with the snapshot
// invalidation that must follow every balance mutation, plus metrics.
type LedgerService struct {
	store ports.LedgerStore
	cache ports.SnapshotCache
	log   zerolog.Logger
}

func NewLedgerService(store ports.LedgerStore, cache ports.SnapshotCache, log zerolog.Logger) *LedgerService {
	return &LedgerService{store: store, cache: cache, log: log}
}

// DebitForAction atomically checks the balance, runs the dependent business
// write, and decrements the balance. All three apply or none do.
func (s *LedgerService) DebitForAction(ctx context.Context, userID string, kind domain.BalanceKind, cost int, action func(ctx context.Context, tx bun.IDB) error) error {
	err := s.store.DebitForAction(ctx, userID, kind, cost, action)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientTokens) {
			metrics.TokenDebitsTotal.WithLabelValues(string(kind), "insufficient").Inc()
		} else {
			metrics.TokenDebitsTotal.WithLabelValues(string(kind), "error").Inc()
		}
		return err
	}
	metrics.TokenDebitsTotal.WithLabelValues(string(kind), "ok").Inc()

	// The snapshot mirrors the balance; a stale entry must not outlive the
	// commit. Cache unavailability is logged, not surfaced: the TTL bounds
	// the staleness window.
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("snapshot invalidation failed after debit")
	}

	s.log.Info().
		Str("user_id", userID).
		Str("kind", string(kind)).
		Int("cost", cost).
		Msg("tokens debited")
	return nil
}

// CreditFromPayment captures the order and credits its quantity exactly
// once per order reference.
func (s *LedgerService) CreditFromPayment(ctx context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error) {
	order, err := s.store.CreditFromOrder(ctx, orderRef, paymentRef)
	if err != nil {
		return nil, err
	}
	metrics.TokenCreditsTotal.WithLabelValues(string(order.Kind)).Inc()

	if err := s.cache.Invalidate(ctx, order.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", order.UserID).Msg("snapshot invalidation failed after credit")
	}

	s.log.Info().
		Str("user_id", order.UserID).
		Str("order_ref", orderRef).
		Str("kind", string(order.Kind)).
		Int("quantity", order.Quantity).
		Msg("tokens credited")
	return order, nil
}
