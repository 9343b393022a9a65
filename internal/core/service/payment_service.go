package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// SignatureVerifier abstracts HMAC verification of checkout confirmations.
type SignatureVerifier interface {
	VerifySignature(orderRef, paymentRef, signature string) error
}

// GatewayClient abstracts order creation at the payment gateway.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amountPaise int, currency, receipt string) (string, error)
}

// tokenPackage fixes the quantity and price of a purchasable bundle.
// Amounts are INR paise. The client only ever names a package; quantity and
// price are resolved here and stored on the order.
type tokenPackage struct {
	Quantity    int
	AmountPaise int
}

var tokenPackages = map[domain.BalanceKind]map[string]tokenPackage{
	domain.BalanceBid: {
		"starter": {Quantity: 5, AmountPaise: 9900},
		"pro":     {Quantity: 20, AmountPaise: 29900},
	},
	domain.BalanceProject: {
		"starter": {Quantity: 3, AmountPaise: 14900},
		"pro":     {Quantity: 10, AmountPaise: 39900},
	},
}

var errUnknownPackage = errors.New("unknown token package")

// PaymentService drives the token purchase flow: gateway order creation,
// confirmation verification, and idempotent crediting.
type PaymentService struct {
	orders   ports.OrderRepository
	ledger   ports.LedgerService
	gateway  GatewayClient
	verifier SignatureVerifier
	dedup    ports.PaymentDedup
	log      zerolog.Logger
}

func NewPaymentService(orders ports.OrderRepository, ledger ports.LedgerService, gateway GatewayClient, verifier SignatureVerifier, dedup ports.PaymentDedup, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		orders:   orders,
		ledger:   ledger,
		gateway:  gateway,
		verifier: verifier,
		dedup:    dedup,
		log:      log,
	}
}

// CreateOrder registers a gateway order for the named package and records
// it locally in created state.
func (s *PaymentService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", errUnknownPackage, in.Kind)
	}
	pkg, ok := tokenPackages[in.Kind][in.Package]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownPackage, in.Package)
	}

	receipt := uuid.NewString()
	orderRef, err := s.gateway.CreateOrder(ctx, pkg.AmountPaise, "INR", receipt)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	order := &domain.TokenOrder{
		ID:          receipt,
		UserID:      in.UserID,
		Kind:        in.Kind,
		Quantity:    pkg.Quantity,
		AmountPaise: pkg.AmountPaise,
		OrderRef:    orderRef,
		Status:      domain.OrderCreated,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("order_ref", orderRef).
		Str("kind", string(in.Kind)).
		Int("quantity", pkg.Quantity).
		Msg("token order created")

	return &ports.CreateOrderResult{
		OrderRef:    orderRef,
		Quantity:    pkg.Quantity,
		AmountPaise: pkg.AmountPaise,
		Currency:    "INR",
	}, nil
}

// Confirm verifies the checkout proof and credits the order. Verification
// happens strictly before any ledger mutation, and nothing from the proof
// beyond the two references is used afterwards.
func (s *PaymentService) Confirm(ctx context.Context, userID string, proof ports.PaymentProof) (*domain.TokenOrder, error) {
	if err := s.verifier.VerifySignature(proof.OrderRef, proof.PaymentRef, proof.Signature); err != nil {
		metrics.PaymentSignatureFailuresTotal.Inc()
		// Security event: log who sent the forged proof, never the secret
		// or the expected MAC.
		s.log.Warn().
			Str("user_id", userID).
			Str("order_ref", proof.OrderRef).
			Msg("payment confirmation failed signature verification")
		return nil, err
	}

	order, err := s.orders.FindByOrderRef(ctx, proof.OrderRef)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}

	return s.credit(ctx, proof.OrderRef, proof.PaymentRef)
}

// ProcessCapture applies a gateway webhook capture. The webhook body
// signature was already checked at the route; delivery is at-least-once, so
// the credit path must be idempotent.
func (s *PaymentService) ProcessCapture(ctx context.Context, ev ports.PaymentCaptureEvent) error {
	_, err := s.credit(ctx, ev.OrderRef, ev.PaymentRef)
	if errors.Is(err, domain.ErrDuplicatePayment) {
		s.log.Debug().Str("order_ref", ev.OrderRef).Msg("duplicate capture skipped")
		return nil
	}
	return err
}

func (s *PaymentService) credit(ctx context.Context, orderRef, paymentRef string) (*domain.TokenOrder, error) {
	// Fast-path replay check; the conditional capture in the store is the
	// authority, so a dedup miss on a replay is still safe.
	seen, err := s.dedup.Seen(ctx, paymentRef)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_ref", paymentRef).Msg("payment dedup check failed, continuing")
	} else if seen {
		return nil, domain.ErrDuplicatePayment
	}

	order, err := s.ledger.CreditFromPayment(ctx, orderRef, paymentRef)
	if err != nil {
		return nil, err
	}

	if err := s.dedup.Mark(ctx, paymentRef); err != nil {
		s.log.Warn().Err(err).Str("payment_ref", paymentRef).Msg("failed to set payment dedup key")
	}
	return order, nil
}
