package domain

import "errors"

var (
	// ErrUnauthenticated means no valid identity could be resolved from the
	// request credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUserNotFound means the identity provider accepted the credential
	// but no matching application account exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden means the caller is authenticated but lacks the required
	// role or verification status.
	ErrForbidden = errors.New("access forbidden")

	// ErrInsufficientTokens means a debit would drive the balance negative.
	ErrInsufficientTokens = errors.New("insufficient tokens")
	// ErrDuplicateAction means the caller already performed this action
	// against the same target.
	ErrDuplicateAction = errors.New("action already performed")
	// ErrSelfActionForbidden means the caller is acting on their own resource.
	ErrSelfActionForbidden = errors.New("cannot act on own resource")

	// ErrInvalidPaymentSignature means the payment confirmation failed HMAC
	// verification. Treated as a security event.
	ErrInvalidPaymentSignature = errors.New("invalid payment signature")
	// ErrDuplicatePayment means the payment was already credited; the replay
	// is a no-op toward the balance.
	ErrDuplicatePayment = errors.New("payment already processed")

	ErrInvalidTransition = errors.New("invalid verification transition")

	ErrUserExists           = errors.New("user already exists")
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectClosed        = errors.New("project is closed")
	ErrBidNotFound          = errors.New("bid not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrConversationNotFound = errors.New("conversation not found")
)
