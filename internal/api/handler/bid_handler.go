package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// BidHandler handles HTTP requests for bids on projects.
type BidHandler struct {
	service ports.BidService
}

func NewBidHandler(service ports.BidService) *BidHandler {
	return &BidHandler{service: service}
}

type placeBidRequest struct {
	AmountUSD int    `json:"amount_usd" validate:"gt=0"`
	Pitch     string `json:"pitch" validate:"required,min=10,max=2000"`
}

type bidResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	DeveloperID string `json:"developer_id"`
	AmountUSD   int    `json:"amount_usd"`
	Pitch       string `json:"pitch"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type decideBidRequest struct {
	Accept bool `json:"accept"`
}

// Place handles POST /v1/projects/:id/bids. Bidding costs bid tokens; the
// bid row and the debit commit together.
func (h *BidHandler) Place(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bid, err := h.service.Place(c.Request().Context(), ports.PlaceBidInput{
		ProjectID:   c.Param("id"),
		DeveloperID: identity.UserID,
		AmountUSD:   req.AmountUSD,
		Pitch:       req.Pitch,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBidResponse(bid))
}

// ListByProject handles GET /v1/projects/:id/bids. Only the project owner or
// an admin sees the bid list.
func (h *BidHandler) ListByProject(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	bids, err := h.service.ListByProject(c.Request().Context(), c.Param("id"), identity)
	if err != nil {
		return err
	}

	items := make([]bidResponse, 0, len(bids))
	for _, b := range bids {
		items = append(items, toBidResponse(b))
	}
	return c.JSON(http.StatusOK, map[string][]bidResponse{"items": items})
}

// Withdraw handles DELETE /v1/bids/:id.
func (h *BidHandler) Withdraw(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	if err := h.service.Withdraw(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Decide handles POST /v1/bids/:id/decision.
func (h *BidHandler) Decide(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req decideBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Decide(c.Request().Context(), c.Param("id"), identity.UserID, req.Accept); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toBidResponse(b *domain.Bid) bidResponse {
	return bidResponse{
		ID:          b.ID,
		ProjectID:   b.ProjectID,
		DeveloperID: b.DeveloperID,
		AmountUSD:   b.AmountUSD,
		Pitch:       b.Pitch,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
