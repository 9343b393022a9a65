package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
)

func newVerificationFixture(status domain.VerificationStatus) (*VerificationService, *stubUserRepo, *stubSnapshotCache) {
	users := newStubUserRepo(&domain.User{
		ID:                 "u1",
		Role:               domain.RoleDeveloper,
		VerificationStatus: status,
	})
	cache := newStubSnapshotCache()
	return NewVerificationService(users, cache, zerolog.Nop()), users, cache
}

func TestVerificationRequest(t *testing.T) {
	svc, users, cache := newVerificationFixture(domain.VerificationUnverified)

	if err := svc.Request(context.Background(), "u1"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	u, _ := users.GetByID(context.Background(), "u1")
	if u.VerificationStatus != domain.VerificationRequested {
		t.Fatalf("status: got %s, want requested", u.VerificationStatus)
	}
	if cache.invalidatedCount("u1") != 1 {
		t.Fatal("snapshot not invalidated on status change")
	}
}

func TestVerificationRequest_AlreadyRequested(t *testing.T) {
	svc, _, _ := newVerificationFixture(domain.VerificationRequested)

	if err := svc.Request(context.Background(), "u1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVerificationDecide_Approve(t *testing.T) {
	svc, users, _ := newVerificationFixture(domain.VerificationRequested)

	if err := svc.Decide(context.Background(), "u1", true); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	u, _ := users.GetByID(context.Background(), "u1")
	if u.VerificationStatus != domain.VerificationVerified {
		t.Fatalf("status: got %s, want verified", u.VerificationStatus)
	}
}

func TestVerificationDecide_Reject(t *testing.T) {
	svc, users, _ := newVerificationFixture(domain.VerificationRequested)

	if err := svc.Decide(context.Background(), "u1", false); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	u, _ := users.GetByID(context.Background(), "u1")
	if u.VerificationStatus != domain.VerificationUnverified {
		t.Fatalf("status: got %s, want unverified", u.VerificationStatus)
	}
}

// Verified is terminal: an admin cannot revoke or re-approve.
func TestVerificationDecide_VerifiedIsTerminal(t *testing.T) {
	svc, _, _ := newVerificationFixture(domain.VerificationVerified)

	if err := svc.Decide(context.Background(), "u1", false); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVerification_UnknownUser(t *testing.T) {
	svc, _, _ := newVerificationFixture(domain.VerificationUnverified)

	if err := svc.Request(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
