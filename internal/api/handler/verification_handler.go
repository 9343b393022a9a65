package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// VerificationHandler drives the trust-tier workflow: users request
// verification, admins decide.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

type decideVerificationRequest struct {
	Approve bool `json:"approve"`
}

// Request handles POST /v1/verification/request for the calling user.
func (h *VerificationHandler) Request(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}
	if err := h.service.Request(c.Request().Context(), identity.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// Decide handles POST /v1/verification/:user_id/decision. Admin only,
// enforced at the route.
func (h *VerificationHandler) Decide(c echo.Context) error {
	var req decideVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Decide(c.Request().Context(), c.Param("user_id"), req.Approve); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
