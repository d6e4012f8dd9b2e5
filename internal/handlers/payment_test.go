package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaymentConfig() PaymentConfig {
	return PaymentConfig{
		StripeSecretKey: "", // deliberately unset: tests never reach the provider
		Currency:        "zar",
		MinUnitAmount:   50,
		MaxQuantity:     99,
		ShippingCountry: "ZA",
	}
}

func postCheckout(t *testing.T, h *PaymentHandler, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/create-checkout-session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleCreateCheckoutSession(c))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestCreateCheckoutSessionEmptyCart(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	for _, body := range []string{`{}`, `{"cart": []}`} {
		rec, resp := postCheckout(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Cart is empty", resp["error"])
	}
}

func TestCreateCheckoutSessionInvalidBody(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	rec, resp := postCheckout(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", resp["error"])
}

func TestCreateCheckoutSessionLineValidation(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			"zero quantity",
			`{"cart": [{"name": "Tee", "unit_amount": 55000, "quantity": 0}]}`,
			"Invalid quantity for Tee",
		},
		{
			"quantity above cap",
			`{"cart": [{"name": "Tee", "unit_amount": 55000, "quantity": 100}]}`,
			"Invalid quantity for Tee",
		},
		{
			"price below provider minimum",
			`{"cart": [{"name": "Tee", "unit_amount": 49, "quantity": 1}]}`,
			"Invalid price for Tee",
		},
		{
			"nameless line reported as Item",
			`{"cart": [{"unit_amount": 10, "quantity": 1}]}`,
			"Invalid price for Item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postCheckout(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestCreateCheckoutSessionMissingSecretKey(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	rec, resp := postCheckout(t, h, `{"cart": [{"name": "Tee", "unit_amount": 55000, "quantity": 1}]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Payment processing is not configured", resp["error"])
}

func TestBuildLineItems(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	items, err := h.buildLineItems([]CheckoutItem{
		{Name: "Tee", UnitAmount: 55000, Quantity: 2, Size: "M", Color: "Black", Image: "https://cdn.example/tee.jpg"},
		{UnitAmount: 35000, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "zar", *first.PriceData.Currency)
	assert.Equal(t, int64(55000), *first.PriceData.UnitAmount)
	assert.Equal(t, "Tee", *first.PriceData.ProductData.Name)
	assert.Equal(t, "Size: M • Color: Black", *first.PriceData.ProductData.Description)
	require.Len(t, first.PriceData.ProductData.Images, 1)

	second := items[1]
	assert.Equal(t, "Item", *second.PriceData.ProductData.Name)
	assert.Nil(t, second.PriceData.ProductData.Description)
}

func TestBuildLineItemsDescriptionParts(t *testing.T) {
	h := NewPaymentHandler(testPaymentConfig())

	items, err := h.buildLineItems([]CheckoutItem{
		{Name: "Cap", UnitAmount: 35000, Quantity: 1, Size: "One Size"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Size: One Size", *items[0].PriceData.ProductData.Description)
}

func TestResolveBaseURL(t *testing.T) {
	e := echo.New()

	newCtx := func(headers map[string]string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Host = "store.local"
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("configured site url wins", func(t *testing.T) {
		h := NewPaymentHandler(PaymentConfig{SiteURL: "https://faideclothing.com/"})
		assert.Equal(t, "https://faideclothing.com", h.resolveBaseURL(newCtx(nil)))
	})

	t.Run("forwarded headers", func(t *testing.T) {
		h := NewPaymentHandler(PaymentConfig{})
		c := newCtx(map[string]string{
			"X-Forwarded-Proto": "https",
			"X-Forwarded-Host":  "faideclothing.com",
		})
		assert.Equal(t, "https://faideclothing.com", h.resolveBaseURL(c))
	})

	t.Run("falls back to request host", func(t *testing.T) {
		h := NewPaymentHandler(PaymentConfig{})
		assert.Equal(t, "http://store.local", h.resolveBaseURL(newCtx(nil)))
	})
}

func TestIdempotencyKey(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Idempotency-Key", "client-key-123")
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "client-key-123", idempotencyKey(c))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	minted := idempotencyKey(c)
	assert.Len(t, minted, 26) // ULID
	assert.NotEqual(t, minted, idempotencyKey(c))
}
