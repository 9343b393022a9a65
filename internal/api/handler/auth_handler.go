package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// AuthHandler exposes registration and session introspection. Passwords never
// appear here: the identity provider owns the credential, and registration
// just exchanges a provider session for an application account.
type AuthHandler struct {
	identities ports.IdentityService
}

func NewAuthHandler(identities ports.IdentityService) *AuthHandler {
	return &AuthHandler{identities: identities}
}

type registerRequest struct {
	Role        string `json:"role" validate:"required,oneof=client developer"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=80"`
}

type userResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	DisplayName        string `json:"display_name"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
	BidTokens          int    `json:"bid_tokens"`
	ProjectTokens      int    `json:"project_tokens"`
}

// Register creates an application account for the bearer of a valid provider
// session. The route is public: at this point the caller has a provider
// identity but no account yet.
func (h *AuthHandler) Register(c echo.Context) error {
	credential := bearerToken(c)
	if credential == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identities.Register(c.Request().Context(), credential, ports.RegisterInput{
		Role:        req.Role,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		DisplayName:        user.DisplayName,
		Role:               user.Role,
		VerificationStatus: string(user.VerificationStatus),
		BidTokens:          user.BidTokens,
		ProjectTokens:      user.ProjectTokens,
	})
}

type sessionResponse struct {
	UserID             string `json:"user_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	VerificationStatus string `json:"verification_status"`
}

// Session returns the identity the access gate resolved for this request.
func (h *AuthHandler) Session(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		UserID:             identity.UserID,
		Email:              identity.Email,
		Role:               identity.Role,
		VerificationStatus: string(identity.VerificationStatus),
	})
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
