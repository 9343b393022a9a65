package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

func sign(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	v := NewVerifier("topsecret")
	sig := sign("topsecret", "order_123", "pay_456")

	if err := v.VerifySignature("order_123", "pay_456", sig); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifySignature_Mutations(t *testing.T) {
	v := NewVerifier("topsecret")
	sig := sign("topsecret", "order_123", "pay_456")

	cases := []struct {
		name                  string
		orderRef, paymentRef  string
		signature             string
	}{
		{"mutated order ref", "order_124", "pay_456", sig},
		{"mutated payment ref", "order_123", "pay_457", sig},
		{"swapped refs", "pay_456", "order_123", sig},
		{"mutated signature", "order_123", "pay_456", sign("topsecret", "order_123", "pay_457")},
		{"wrong secret", "order_123", "pay_456", sign("othersecret", "order_123", "pay_456")},
		{"non-hex signature", "order_123", "pay_456", "zzzz"},
		{"empty signature", "order_123", "pay_456", ""},
	}

	for _, tc := range cases {
		err := v.VerifySignature(tc.orderRef, tc.paymentRef, tc.signature)
		if !errors.Is(err, domain.ErrInvalidPaymentSignature) {
			t.Errorf("%s: expected ErrInvalidPaymentSignature, got %v", tc.name, err)
		}
	}
}

func TestVerifySignature_ConcatenationIsDelimited(t *testing.T) {
	// "ab|c" + "d" must not verify as "ab" + "cd".
	v := NewVerifier("topsecret")
	sig := sign("topsecret", "ab", "cd")

	if err := v.VerifySignature("ab|c", "d", sig); err == nil {
		t.Fatal("delimiter-shifted refs should not verify")
	}
	if err := v.VerifySignature("ab", "cd", sig); err != nil {
		t.Fatalf("exact refs rejected: %v", err)
	}
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	mac := hmac.New(sha256.New, []byte("hooksecret"))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if err := VerifyWebhook([]byte("hooksecret"), body, sig); err != nil {
		t.Fatalf("valid webhook rejected: %v", err)
	}
	if err := VerifyWebhook([]byte("hooksecret"), append(body, ' '), sig); !errors.Is(err, domain.ErrInvalidPaymentSignature) {
		t.Fatalf("tampered body: expected ErrInvalidPaymentSignature, got %v", err)
	}
	if err := VerifyWebhook([]byte("wrong"), body, sig); !errors.Is(err, domain.ErrInvalidPaymentSignature) {
		t.Fatalf("wrong secret: expected ErrInvalidPaymentSignature, got %v", err)
	}
}
