package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faideclothing/faide-store/internal/cart"
	"github.com/faideclothing/faide-store/internal/paypal"
	"github.com/faideclothing/faide-store/internal/session"
)

// PayPalHandler forwards the two-step create/capture flow to PayPal. A
// successful capture clears the visitor's cart; any failure leaves it intact
// so the buyer can retry.
type PayPalHandler struct {
	client    *paypal.Client
	sessions  *session.Manager
	snapshots cart.SnapshotStore
	currency  string
}

func NewPayPalHandler(client *paypal.Client, sessions *session.Manager, snapshots cart.SnapshotStore, currency string) *PayPalHandler {
	return &PayPalHandler{
		client:    client,
		sessions:  sessions,
		snapshots: snapshots,
		currency:  currency,
	}
}

type createOrderRequest struct {
	Cart       []CheckoutItem `json:"cart"`
	TotalCents int64          `json:"total_cents"`
	Currency   string         `json:"currency"`
}

// HandleCreateOrder computes the order total from the posted cart (or an
// explicit total) and creates a CAPTURE-intent order, returning its ID for
// the provider-hosted buttons.
func (h *PayPalHandler) HandleCreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	totalCents := req.TotalCents
	if len(req.Cart) > 0 {
		totalCents = 0
		for _, item := range req.Cart {
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			totalCents += item.UnitAmount * qty
		}
	}
	if totalCents <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Cart is empty")
	}

	if !h.client.Configured() {
		slog.Error("paypal order requested but credentials are not configured")
		return errorJSON(c, http.StatusInternalServerError, "Missing PAYPAL_CLIENT_ID or PAYPAL_CLIENT_SECRET")
	}

	currency := req.Currency
	if currency == "" {
		currency = h.currency
	}

	order, err := h.client.CreateOrder(c.Request().Context(), totalCents, currency, idempotencyKey(c))
	if err != nil {
		slog.Error("failed to create paypal order", "error", err, "total_cents", totalCents, "currency", currency)
		return errorJSON(c, http.StatusInternalServerError, "PayPal order error")
	}

	return c.JSON(http.StatusOK, map[string]string{"id": order.ID})
}

type captureOrderRequest struct {
	OrderID string `json:"orderID"`
}

// HandleCaptureOrder finalises a previously approved order.
func (h *PayPalHandler) HandleCaptureOrder(c echo.Context) error {
	var req captureOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	orderID := req.OrderID
	if orderID == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing orderID")
	}

	if !h.client.Configured() {
		slog.Error("paypal capture requested but credentials are not configured")
		return errorJSON(c, http.StatusInternalServerError, "Missing PAYPAL_CLIENT_ID or PAYPAL_CLIENT_SECRET")
	}

	result, err := h.client.CaptureOrder(c.Request().Context(), orderID)
	if err != nil {
		slog.Error("failed to capture paypal order", "error", err, "order_id", orderID)
		return errorJSON(c, http.StatusInternalServerError, "PayPal capture error")
	}

	slog.Info("paypal order captured", "order_id", result.ID, "status", result.Status)

	// Payment is done; the visitor's cart snapshot is no longer current.
	h.clearVisitorCart(c)

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "captured",
		"capture": json.RawMessage(result.Raw),
	})
}

func (h *PayPalHandler) clearVisitorCart(c echo.Context) {
	visitorID, err := h.sessions.VisitorID(c)
	if err != nil {
		slog.Error("failed to resolve visitor for cart clear", "error", err)
		return
	}
	if err := h.snapshots.Delete(c.Request().Context(), cart.CartKeyPrefix+visitorID); err != nil {
		slog.Error("failed to clear cart after capture", "error", err, "visitor_id", visitorID)
	}
}
