package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// PaymentDedup provides a fast-path replay check for payment references.
// The database's conditional order capture remains the authority; this only
// short-cuts webhook redeliveries. Key format: payment:<payment_ref>
type PaymentDedup struct {
	client *redis.Client
}

func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// Seen reports whether this payment reference has already been processed.
func (d *PaymentDedup) Seen(ctx context.Context, paymentRef string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(paymentRef)).Result()
	if err != nil {
		return false, fmt.Errorf("payment dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this payment has been credited (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, paymentRef string) error {
	return d.client.Set(ctx, d.key(paymentRef), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(paymentRef string) string {
	return "payment:" + paymentRef
}
