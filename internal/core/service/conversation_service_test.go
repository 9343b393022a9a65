package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

func newConversationFixture() (*ConversationService, *stubConversationRepo) {
	projects := newStubProjectRepo(
		&domain.Project{ID: "p1", OwnerID: "client1", Status: domain.ProjectOpen},
	)
	repo := newStubConversationRepo()
	return NewConversationService(repo, projects, zerolog.Nop()), repo
}

func TestStartConversation_ClientInitiated(t *testing.T) {
	svc, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), "client1", ports.StartConversationInput{
		ProjectID:   "p1",
		DeveloperID: "dev1",
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if conv.ClientID != "client1" || conv.DeveloperID != "dev1" {
		t.Fatalf("unexpected participants: %+v", conv)
	}
}

func TestStartConversation_DeveloperInitiated(t *testing.T) {
	svc, _ := newConversationFixture()

	conv, err := svc.Start(context.Background(), "dev1", ports.StartConversationInput{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if conv.ClientID != "client1" || conv.DeveloperID != "dev1" {
		t.Fatalf("unexpected participants: %+v", conv)
	}
}

func TestStartConversation_WithSelfRejected(t *testing.T) {
	svc, _ := newConversationFixture()

	_, err := svc.Start(context.Background(), "client1", ports.StartConversationInput{
		ProjectID:   "p1",
		DeveloperID: "client1",
	})
	if !errors.Is(err, domain.ErrSelfActionForbidden) {
		t.Fatalf("expected ErrSelfActionForbidden, got %v", err)
	}
}

func TestStartConversation_DuplicateRejected(t *testing.T) {
	svc, _ := newConversationFixture()

	if _, err := svc.Start(context.Background(), "dev1", ports.StartConversationInput{ProjectID: "p1"}); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	_, err := svc.Start(context.Background(), "dev1", ports.StartConversationInput{ProjectID: "p1"})
	if !errors.Is(err, domain.ErrDuplicateAction) {
		t.Fatalf("expected ErrDuplicateAction, got %v", err)
	}
}

func TestSendMessage_ParticipantsOnly(t *testing.T) {
	svc, _ := newConversationFixture()
	conv, err := svc.Start(context.Background(), "dev1", ports.StartConversationInput{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := svc.Send(context.Background(), conv.ID, "stranger", "hi"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	msg, err := svc.Send(context.Background(), conv.ID, "client1", "hello there")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if msg.SenderID != "client1" || msg.Body != "hello there" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	msgs, err := svc.Messages(context.Background(), conv.ID, "dev1")
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("message count: got %d, want 1", len(msgs))
	}

	if _, err := svc.Messages(context.Background(), conv.ID, "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger reading thread: expected ErrForbidden, got %v", err)
	}
}

func TestSendMessage_EmptyBody(t *testing.T) {
	svc, _ := newConversationFixture()
	conv, _ := svc.Start(context.Background(), "dev1", ports.StartConversationInput{ProjectID: "p1"})

	if _, err := svc.Send(context.Background(), conv.ID, "dev1", "   "); err == nil {
		t.Fatal("expected error for empty body")
	}
}
