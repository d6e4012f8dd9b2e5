package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
)

// PaymentConfig carries the server-held checkout settings. The Stripe secret
// is deliberately checked per request, not at startup: the handler is the
// unit of failure here, and a missing key must produce a 500 for the one
// request that needed it.
type PaymentConfig struct {
	StripeSecretKey string
	SiteURL         string
	Currency        string
	MinUnitAmount   int64
	MaxQuantity     int64
	ShippingCountry string
}

type PaymentHandler struct {
	config PaymentConfig
}

func NewPaymentHandler(config PaymentConfig) *PaymentHandler {
	return &PaymentHandler{config: config}
}

// CheckoutItem is one cart line as posted by the storefront. unit_amount is
// in minor currency units.
type CheckoutItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int64  `json:"quantity"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Image      string `json:"image"`
}

type createCheckoutSessionRequest struct {
	Cart []CheckoutItem `json:"cart"`
}

// errorJSON matches the wire shape the storefront expects from the payment
// endpoints: {"error": "..."}.
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// HandleCreateCheckoutSession validates the posted cart and creates a hosted
// Stripe Checkout session, returning its URL. Provider failures are logged in
// full and surfaced to the client as a generic message.
func (h *PaymentHandler) HandleCreateCheckoutSession(c echo.Context) error {
	var req createCheckoutSessionRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	if len(req.Cart) == 0 {
		return errorJSON(c, http.StatusBadRequest, "Cart is empty")
	}

	lineItems, err := h.buildLineItems(req.Cart)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if h.config.StripeSecretKey == "" {
		slog.Error("checkout requested but STRIPE_SECRET_KEY is not configured")
		return errorJSON(c, http.StatusInternalServerError, "Payment processing is not configured")
	}

	baseURL := h.resolveBaseURL(c)

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(baseURL + "/?success=1"),
		CancelURL:          stripe.String(baseURL + "/?canceled=1"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: []*string{stripe.String(h.config.ShippingCountry)},
		},
	}

	// A retried submission (double click, flaky network) reuses the same
	// idempotency key and therefore the same provider-side session.
	params.IdempotencyKey = stripe.String(idempotencyKey(c))

	stripe.Key = h.config.StripeSecretKey
	session, err := checkoutsession.New(params)
	if err != nil {
		slog.Error("failed to create stripe checkout session", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Checkout session creation failed")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": session.URL})
}

// buildLineItems validates each posted line and converts it to Stripe's
// line-item shape. Size and color travel in the product description.
func (h *PaymentHandler) buildLineItems(items []CheckoutItem) ([]*stripe.CheckoutSessionLineItemParams, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))

	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Item"
		}

		currency := strings.ToLower(item.Currency)
		if currency == "" {
			currency = strings.ToLower(h.config.Currency)
		}

		if item.Quantity < 1 || item.Quantity > h.config.MaxQuantity {
			return nil, fmt.Errorf("Invalid quantity for %s", name)
		}
		if item.UnitAmount < h.config.MinUnitAmount {
			return nil, fmt.Errorf("Invalid price for %s", name)
		}

		var metaParts []string
		if item.Size != "" {
			metaParts = append(metaParts, "Size: "+item.Size)
		}
		if item.Color != "" {
			metaParts = append(metaParts, "Color: "+item.Color)
		}

		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(currency),
			UnitAmount: stripe.Int64(item.UnitAmount),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		}
		if len(metaParts) > 0 {
			priceData.ProductData.Description = stripe.String(strings.Join(metaParts, " • "))
		}
		if item.Image != "" {
			priceData.ProductData.Images = []*string{stripe.String(item.Image)}
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(item.Quantity),
		})
	}

	return lineItems, nil
}

// resolveBaseURL builds the absolute origin for redirect URLs: the configured
// site URL when present, otherwise the forwarded proto/host headers set by
// the fronting proxy, otherwise the request itself.
func (h *PaymentHandler) resolveBaseURL(c echo.Context) string {
	if h.config.SiteURL != "" {
		return strings.TrimRight(h.config.SiteURL, "/")
	}

	proto := c.Request().Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = c.Scheme()
	}
	host := c.Request().Header.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Request().Host
	}
	return strings.TrimRight(proto+"://"+host, "/")
}

// idempotencyKey prefers a client-generated key so browser retries collapse,
// minting a fresh one otherwise.
func idempotencyKey(c echo.Context) string {
	if key := c.Request().Header.Get("Idempotency-Key"); key != "" {
		return key
	}
	return ulid.Make().String()
}
