package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// TokenHandler handles token purchase: order creation against the payment
// gateway and confirmation of a completed checkout.
type TokenHandler struct {
	service ports.PaymentService
}

func NewTokenHandler(service ports.PaymentService) *TokenHandler {
	return &TokenHandler{service: service}
}

type createOrderRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=bid project"`
	Package string `json:"package" validate:"required"`
}

type createOrderResponse struct {
	OrderRef    string `json:"order_ref"`
	Quantity    int    `json:"quantity"`
	AmountPaise int    `json:"amount_paise"`
	Currency    string `json:"currency"`
}

type confirmOrderRequest struct {
	OrderRef   string `json:"order_ref" validate:"required"`
	PaymentRef string `json:"payment_ref" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
}

type confirmOrderResponse struct {
	OrderRef   string `json:"order_ref"`
	Kind       string `json:"kind"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
	CapturedAt string `json:"captured_at,omitempty"`
}

// CreateOrder handles POST /v1/tokens/orders. Quantity and price come from
// the named package server-side; nothing monetary is trusted from the client.
func (h *TokenHandler) CreateOrder(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		UserID:  identity.UserID,
		Kind:    domain.BalanceKind(req.Kind),
		Package: req.Package,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		OrderRef:    result.OrderRef,
		Quantity:    result.Quantity,
		AmountPaise: result.AmountPaise,
		Currency:    result.Currency,
	})
}

// Confirm handles POST /v1/tokens/orders/confirm with the gateway checkout
// proof. The signature is verified before anything else happens.
func (h *TokenHandler) Confirm(c echo.Context) error {
	identity, err := middleware.Identity(c)
	if err != nil {
		return err
	}

	var req confirmOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.Confirm(c.Request().Context(), identity.UserID, ports.PaymentProof{
		OrderRef:   req.OrderRef,
		PaymentRef: req.PaymentRef,
		Signature:  req.Signature,
	})
	if err != nil {
		return err
	}

	resp := confirmOrderResponse{
		OrderRef: order.OrderRef,
		Kind:     string(order.Kind),
		Quantity: order.Quantity,
		Status:   string(order.Status),
	}
	if order.CapturedAt != nil {
		resp.CapturedAt = order.CapturedAt.UTC().Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}
