package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// ProfileHandler serves and mutates user-facing profile data backed by the
// snapshot cache.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=80"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

type profileResponse struct {
	UserID             string `json:"user_id"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	DisplayName        string `json:"display_name"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	BidTokens          int    `json:"bid_tokens"`
	ProjectTokens      int    `json:"project_tokens"`
}

// Me handles GET /v1/profile for the calling user. Token balances are only
// shown to their owner.
func (h *ProfileHandler) Me(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	snap, err := h.service.Get(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(snap, true))
}

// Get handles GET /v1/users/:id, the public view of another user.
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	userID := c.Param("id")
	snap, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	includeBalances := identity.UserID == userID || identity.Role == domain.RoleAdmin
	return c.JSON(http.StatusOK, toProfileResponse(snap, includeBalances))
}

// Update handles PUT /v1/profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), identity.UserID, ports.UpdateProfileInput{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toProfileResponse(snap *domain.Snapshot, includeBalances bool) profileResponse {
	resp := profileResponse{
		UserID:             snap.UserID,
		Role:               snap.Role,
		VerificationStatus: string(snap.VerificationStatus),
		DisplayName:        snap.DisplayName,
		AvatarURL:          snap.AvatarURL,
	}
	if includeBalances {
		resp.BidTokens = snap.BidTokens
		resp.ProjectTokens = snap.ProjectTokens
	}
	return resp
}
