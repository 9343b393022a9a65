package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

func newBidFixture(t *testing.T, balance int) (*BidService, *stubLedgerStore, *stubBidRepo, *stubProjectRepo) {
	t.Helper()
	store := newStubLedgerStore()
	store.setBalance("dev1", domain.BalanceBid, balance)
	bids := newStubBidRepo()
	projects := newStubProjectRepo(
		&domain.Project{ID: "p1", OwnerID: "client1", Status: domain.ProjectOpen},
		&domain.Project{ID: "p2", OwnerID: "dev1", Status: domain.ProjectOpen},
		&domain.Project{ID: "p3", OwnerID: "client1", Status: domain.ProjectClosed},
	)
	ledger := NewLedgerService(store, newStubSnapshotCache(), zerolog.Nop())
	svc := NewBidService(bids, projects, ledger, 1, zerolog.Nop())
	return svc, store, bids, projects
}

func TestPlaceBid_Success(t *testing.T) {
	svc, store, bids, _ := newBidFixture(t, 2)

	bid, err := svc.Place(context.Background(), ports.PlaceBidInput{
		ProjectID:   "p1",
		DeveloperID: "dev1",
		AmountUSD:   500,
		Pitch:       "I can do this",
	})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if bid.Status != domain.BidOpen {
		t.Fatalf("bid status: got %s, want open", bid.Status)
	}
	if got := store.balance("dev1", domain.BalanceBid); got != 1 {
		t.Fatalf("balance: got %d, want 1", got)
	}
	if _, err := bids.FindByID(context.Background(), bid.ID); err != nil {
		t.Fatalf("bid not persisted: %v", err)
	}
}

// Bidding on your own project is rejected before the balance check: with a
// zero balance the error must still be SelfActionForbidden, not
// InsufficientTokens.
func TestPlaceBid_SelfActionCheckedBeforeBalance(t *testing.T) {
	svc, _, _, _ := newBidFixture(t, 0)

	_, err := svc.Place(context.Background(), ports.PlaceBidInput{
		ProjectID:   "p2",
		DeveloperID: "dev1",
	})
	if !errors.Is(err, domain.ErrSelfActionForbidden) {
		t.Fatalf("expected ErrSelfActionForbidden, got %v", err)
	}
}

func TestPlaceBid_DuplicateCheckedBeforeBalance(t *testing.T) {
	svc, store, _, _ := newBidFixture(t, 1)

	if _, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"}); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	// Balance is now 0; the duplicate error must not be masked by
	// InsufficientTokens.
	_, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"})
	if !errors.Is(err, domain.ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
	if got := store.balance("dev1", domain.BalanceBid); got != 0 {
		t.Fatalf("duplicate bid changed balance: got %d", got)
	}
}

// Two racing submissions of the same (developer, project) bid can both pass
// the pre-check; the unique index on open bids decides the race inside the
// debit transaction, so only one token is ever spent per pair.
func TestPlaceBid_ConcurrentDuplicateSpendsOneToken(t *testing.T) {
	svc, store, bids, _ := newBidFixture(t, 5)

	const attempts = 8
	errs := make(chan error, attempts)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		go func() {
			<-start
			_, err := svc.Place(context.Background(), ports.PlaceBidInput{
				ProjectID:   "p1",
				DeveloperID: "dev1",
				AmountUSD:   500,
			})
			errs <- err
		}()
	}
	close(start)

	succeeded := 0
	for i := 0; i < attempts; i++ {
		err := <-errs
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDuplicateAction):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("successful placements: got %d, want 1", succeeded)
	}
	if got := store.balance("dev1", domain.BalanceBid); got != 4 {
		t.Fatalf("balance: got %d, want 4 (one token spent)", got)
	}
	open, _ := bids.ListByProject(context.Background(), "p1")
	if len(open) != 1 {
		t.Fatalf("open bids for pair: got %d, want 1", len(open))
	}
}

func TestPlaceBid_InsufficientTokens(t *testing.T) {
	svc, _, bids, _ := newBidFixture(t, 0)

	_, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"})
	if !errors.Is(err, domain.ErrInsufficientTokens) {
		t.Fatalf("expected ErrInsufficientTokens, got %v", err)
	}
	if got, _ := bids.ListByProject(context.Background(), "p1"); len(got) != 0 {
		t.Fatalf("bid created despite failed debit: %d", len(got))
	}
}

func TestPlaceBid_CreateFailureRollsBackDebit(t *testing.T) {
	svc, store, bids, _ := newBidFixture(t, 3)
	bids.createErr = errors.New("insert failed")

	_, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := store.balance("dev1", domain.BalanceBid); got != 3 {
		t.Fatalf("balance changed despite insert failure: got %d, want 3", got)
	}
}

func TestPlaceBid_ClosedProject(t *testing.T) {
	svc, _, _, _ := newBidFixture(t, 1)

	_, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p3", DeveloperID: "dev1"})
	if !errors.Is(err, domain.ErrProjectClosed) {
		t.Fatalf("expected ErrProjectClosed, got %v", err)
	}
}

func TestPlaceBid_UnknownProject(t *testing.T) {
	svc, _, _, _ := newBidFixture(t, 1)

	_, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "nope", DeveloperID: "dev1"})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestListBids_OwnerAndAdminOnly(t *testing.T) {
	svc, _, _, _ := newBidFixture(t, 5)
	if _, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"}); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	owner := &domain.Identity{UserID: "client1", Role: domain.RoleClient}
	admin := &domain.Identity{UserID: "a1", Role: domain.RoleAdmin}
	stranger := &domain.Identity{UserID: "client2", Role: domain.RoleClient}

	if got, err := svc.ListByProject(context.Background(), "p1", owner); err != nil || len(got) != 1 {
		t.Fatalf("owner list: got %d bids, err %v", len(got), err)
	}
	if _, err := svc.ListByProject(context.Background(), "p1", admin); err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if _, err := svc.ListByProject(context.Background(), "p1", stranger); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger list: expected ErrForbidden, got %v", err)
	}
}

func TestWithdrawBid_BidderOnly(t *testing.T) {
	svc, _, _, _ := newBidFixture(t, 1)
	bid, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	if err := svc.Withdraw(context.Background(), bid.ID, "someone-else"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Withdraw(context.Background(), bid.ID, "dev1"); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
}

func TestDecideBid_ProjectOwnerOnly(t *testing.T) {
	svc, _, bids, _ := newBidFixture(t, 1)
	bid, err := svc.Place(context.Background(), ports.PlaceBidInput{ProjectID: "p1", DeveloperID: "dev1"})
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}

	if err := svc.Decide(context.Background(), bid.ID, "dev1", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("bidder deciding: expected ErrForbidden, got %v", err)
	}
	if err := svc.Decide(context.Background(), bid.ID, "client1", true); err != nil {
		t.Fatalf("owner accept failed: %v", err)
	}
	got, _ := bids.FindByID(context.Background(), bid.ID)
	if got.Status != domain.BidAccepted {
		t.Fatalf("bid status: got %s, want accepted", got.Status)
	}
}
