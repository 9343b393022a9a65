package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ConversationHandler handles project message threads.
type ConversationHandler struct {
	service ports.ConversationService
}

func NewConversationHandler(service ports.ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

type startConversationRequest struct {
	ProjectID   string `json:"project_id" validate:"required"`
	DeveloperID string `json:"developer_id"`
}

type sendMessageRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type conversationResponse struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	ClientID      string `json:"client_id"`
	DeveloperID   string `json:"developer_id"`
	CreatedAt     string `json:"created_at"`
	LastMessageAt string `json:"last_message_at"`
}

type messageResponse struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	SentAt         string `json:"sent_at"`
}

// Start handles POST /v1/conversations.
func (h *ConversationHandler) Start(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conv, err := h.service.Start(c.Request().Context(), identity.UserID, ports.StartConversationInput{
		ProjectID:   req.ProjectID,
		DeveloperID: req.DeveloperID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toConversationResponse(conv))
}

// List handles GET /v1/conversations for the calling user.
func (h *ConversationHandler) List(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	convs, err := h.service.ListForUser(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	items := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		items = append(items, toConversationResponse(conv))
	}
	return c.JSON(http.StatusOK, map[string][]conversationResponse{"items": items})
}

// Messages handles GET /v1/conversations/:id/messages.
func (h *ConversationHandler) Messages(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.Messages(c.Request().Context(), c.Param("id"), identity.UserID)
	if err != nil {
		return err
	}

	items := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, toMessageResponse(m))
	}
	return c.JSON(http.StatusOK, map[string][]messageResponse{"items": items})
}

// Send handles POST /v1/conversations/:id/messages.
func (h *ConversationHandler) Send(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), c.Param("id"), identity.UserID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func toConversationResponse(conv *domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:            conv.ID,
		ProjectID:     conv.ProjectID,
		ClientID:      conv.ClientID,
		DeveloperID:   conv.DeveloperID,
		CreatedAt:     conv.CreatedAt.UTC().Format(time.RFC3339),
		LastMessageAt: conv.LastMessage.UTC().Format(time.RFC3339),
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		SentAt:         m.SentAt.UTC().Format(time.RFC3339),
	}
}
