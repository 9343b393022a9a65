// Package payment integrates the Razorpay-style payment gateway: order
// creation over HTTP and HMAC verification of checkout confirmations and
// webhook deliveries.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

// Verifier proves that a claimed payment actually happened. The gateway
// signs orderRef + "|" + paymentRef with the shared key secret; anything
// that does not reproduce that MAC is a forgery.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// VerifySignature checks the caller-supplied hex signature over the order
// and payment references. Comparison is constant-time. A mismatch yields
// domain.ErrInvalidPaymentSignature; the expected MAC is never returned or
// logged.
func (v *Verifier) VerifySignature(orderRef, paymentRef, signature string) error {
	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidPaymentSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(orderRef + "|" + paymentRef))

	if !hmac.Equal(mac.Sum(nil), supplied) {
		return domain.ErrInvalidPaymentSignature
	}
	return nil
}

// VerifyWebhook checks the gateway's signature header over the raw webhook
// body using the dedicated webhook secret.
func VerifyWebhook(secret, body []byte, signature string) error {
	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidPaymentSignature
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)

	if !hmac.Equal(mac.Sum(nil), supplied) {
		return domain.ErrInvalidPaymentSignature
	}
	return nil
}
