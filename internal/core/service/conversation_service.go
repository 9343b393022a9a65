package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ConversationService implements messaging between a project's client and a
// developer. One conversation per (project, pair); participants only.
type ConversationService struct {
	conversations ports.ConversationRepository
	projects      ports.ProjectRepository
	log           zerolog.Logger
}

func NewConversationService(conversations ports.ConversationRepository, projects ports.ProjectRepository, log zerolog.Logger) *ConversationService {
	return &ConversationService{conversations: conversations, projects: projects, log: log}
}

// Start opens a thread about a project. The client side is always the
// project owner; the developer side is the counterparty. Starting a thread
// with yourself is rejected before the duplicate check.
func (s *ConversationService) Start(ctx context.Context, callerID string, in ports.StartConversationInput) (*domain.Conversation, error) {
	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	clientID := project.OwnerID
	developerID := in.DeveloperID
	if callerID != clientID {
		// A developer starting the thread is the developer side.
		developerID = callerID
	}
	if developerID == "" || developerID == clientID {
		return nil, domain.ErrSelfActionForbidden
	}
	if callerID != clientID && callerID != developerID {
		return nil, domain.ErrForbidden
	}

	if existing, err := s.conversations.FindOpen(ctx, in.ProjectID, clientID, developerID); err == nil && existing != nil {
		return nil, domain.ErrDuplicateAction
	} else if err != nil && !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:          uuid.NewString(),
		ProjectID:   in.ProjectID,
		ClientID:    clientID,
		DeveloperID: developerID,
		CreatedAt:   now,
		LastMessage: now,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("conversation_id", conv.ID).
		Str("project_id", in.ProjectID).
		Msg("conversation started")
	return conv, nil
}

// Send appends a message; only participants may post.
func (s *ConversationService) Send(ctx context.Context, conversationID, senderID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("empty message body")
	}

	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Participant(senderID) {
		return nil, domain.ErrForbidden
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		SentAt:         time.Now().UTC(),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ConversationService) ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	return s.conversations.ListForUser(ctx, userID)
}

// Messages returns the thread history to a participant.
func (s *ConversationService) Messages(ctx context.Context, conversationID, callerID string) ([]*domain.Message, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Participant(callerID) {
		return nil, domain.ErrForbidden
	}
	return s.conversations.ListMessages(ctx, conversationID)
}
