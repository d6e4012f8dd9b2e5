package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/webhook"
)

// WebhookHandler receives Stripe's asynchronous event callbacks. The raw body
// is verified against the shared secret before any parsing; re-serialising
// first would change bytes and break the signature.
type WebhookHandler struct {
	secret string
}

func NewWebhookHandler(secret string) *WebhookHandler {
	return &WebhookHandler{secret: secret}
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unable to read request body")
	}

	if h.secret == "" {
		slog.Error("webhook received but STRIPE_WEBHOOK_SECRET is not configured")
		return errorJSON(c, http.StatusInternalServerError, "Missing STRIPE_WEBHOOK_SECRET")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, signature, h.secret)
	if err != nil {
		slog.Error("webhook signature verification failed", "error", err)
		return errorJSON(c, http.StatusBadRequest, "Invalid signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Error("error parsing checkout session", "error", err)
			return errorJSON(c, http.StatusBadRequest, "Error parsing webhook JSON")
		}
		// Acknowledge promptly; the provider retries anything slower.
		// TODO: persist an order record keyed by session.ID for fulfillment.
		slog.Info("payment completed",
			"session_id", session.ID,
			"amount_total", session.AmountTotal,
			"currency", session.Currency,
		)

	default:
		slog.Debug("unhandled webhook event type", "type", event.Type)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
