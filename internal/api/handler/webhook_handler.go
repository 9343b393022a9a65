package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/metrics"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/payment"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/infrastructure/queue"
)

const webhookSignatureHeader = "X-Webhook-Signature"

// WebhookHandler receives payment gateway notifications. The HMAC is checked
// over the raw body before any parsing; accepted captures are acknowledged
// immediately and applied asynchronously by the sharded dispatcher.
type WebhookHandler struct {
	secret     []byte
	dispatcher *queue.Dispatcher
	log        zerolog.Logger
}

func NewWebhookHandler(webhookSecret string, dispatcher *queue.Dispatcher, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{secret: []byte(webhookSecret), dispatcher: dispatcher, log: log}
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		OrderRef   string `json:"order_ref"`
		PaymentRef string `json:"payment_ref"`
		UserID     string `json:"user_id"`
	} `json:"payload"`
}

// PaymentEvent handles POST /webhooks/payments.
func (h *WebhookHandler) PaymentEvent(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	signature := c.Request().Header.Get(webhookSignatureHeader)
	if err := payment.VerifyWebhook(h.secret, body, signature); err != nil {
		metrics.PaymentSignatureFailuresTotal.Inc()
		h.log.Warn().
			Str("remote_ip", c.RealIP()).
			Msg("webhook signature rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Only captures mutate state; everything else is acknowledged and dropped.
	if ev.Event != "payment.captured" {
		return c.NoContent(http.StatusOK)
	}
	if ev.Payload.OrderRef == "" || ev.Payload.PaymentRef == "" || ev.Payload.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment references")
	}

	h.dispatcher.Enqueue(ports.PaymentCaptureEvent{
		UserID:     ev.Payload.UserID,
		OrderRef:   ev.Payload.OrderRef,
		PaymentRef: ev.Payload.PaymentRef,
		ReceivedAt: time.Now().UTC(),
	})
	return c.NoContent(http.StatusAccepted)
}
