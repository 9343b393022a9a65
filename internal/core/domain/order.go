package domain

import "time"

// OrderStatus represents the lifecycle state of a token purchase order.
type OrderStatus string

const (
	OrderCreated  OrderStatus = "created"
	OrderCaptured OrderStatus = "captured"
)

// TokenOrder records a token purchase against the payment gateway. The
// gateway order reference doubles as the credit idempotency key: an order
// moves from created to captured exactly once, and only a captured
// transition credits the balance. Quantity and amount are fixed at order
// creation and never taken from the confirmation request.
type TokenOrder struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Kind        BalanceKind `json:"kind"`
	Quantity    int         `json:"quantity"`
	AmountPaise int         `json:"amount_paise"`
	OrderRef    string      `json:"order_ref"`
	PaymentRef  string      `json:"payment_ref,omitempty"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CapturedAt  *time.Time  `json:"captured_at,omitempty"`
}
