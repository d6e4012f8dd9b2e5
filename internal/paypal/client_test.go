package paypal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePayPal records requests and plays a canned token + order flow.
type fakePayPal struct {
	t              *testing.T
	tokenStatus    int
	orderStatus    int
	orderResponse  string
	lastOrderBody  []byte
	lastRequestID  string
	lastAuthHeader string
}

func (f *fakePayPal) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(f.t, ok)
		assert.Equal(f.t, "client-id", user)
		assert.Equal(f.t, "client-secret", pass)
		require.NoError(f.t, r.ParseForm())
		assert.Equal(f.t, "client_credentials", r.PostForm.Get("grant_type"))

		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
			return
		}
		_, _ = w.Write([]byte(`{"access_token": "test-token", "token_type": "Bearer", "expires_in": 32400}`))
	})

	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuthHeader = r.Header.Get("Authorization")
		f.lastRequestID = r.Header.Get("PayPal-Request-Id")
		f.lastOrderBody, _ = io.ReadAll(r.Body)

		status := f.orderStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.orderResponse))
	})

	mux.HandleFunc("/v2/checkout/orders/ord_1/capture", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuthHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "ord_1", "status": "COMPLETED", "purchase_units": []}`))
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakePayPal) *Client {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := NewClient("client-id", "client-secret", "sandbox")
	client.baseURL = srv.URL
	return client
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient("id", "secret", "live").Configured())
	assert.False(t, NewClient("", "secret", "live").Configured())
	assert.False(t, NewClient("id", "", "live").Configured())
}

func TestEnvironmentSelection(t *testing.T) {
	assert.Equal(t, sandboxBaseURL, NewClient("a", "b", "sandbox").baseURL)
	assert.Equal(t, sandboxBaseURL, NewClient("a", "b", "SANDBOX").baseURL)
	assert.Equal(t, liveBaseURL, NewClient("a", "b", "live").baseURL)
	assert.Equal(t, liveBaseURL, NewClient("a", "b", "").baseURL)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "550.00", FormatAmount(55000))
	assert.Equal(t, "0.50", FormatAmount(50))
	assert.Equal(t, "1649.99", FormatAmount(164999))
}

func TestCreateOrder(t *testing.T) {
	fake := &fakePayPal{t: t, orderResponse: `{"id": "ord_1", "status": "CREATED"}`}
	client := newTestClient(t, fake)

	order, err := client.CreateOrder(context.Background(), 165000, "zar", "req-123")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", order.ID)
	assert.Equal(t, "CREATED", order.Status)

	assert.Equal(t, "Bearer test-token", fake.lastAuthHeader)
	assert.Equal(t, "req-123", fake.lastRequestID)

	var payload struct {
		Intent        string `json:"intent"`
		PurchaseUnits []struct {
			Amount struct {
				CurrencyCode string `json:"currency_code"`
				Value        string `json:"value"`
			} `json:"amount"`
		} `json:"purchase_units"`
	}
	require.NoError(t, json.Unmarshal(fake.lastOrderBody, &payload))
	assert.Equal(t, "CAPTURE", payload.Intent)
	require.Len(t, payload.PurchaseUnits, 1)
	assert.Equal(t, "ZAR", payload.PurchaseUnits[0].Amount.CurrencyCode)
	assert.Equal(t, "1650.00", payload.PurchaseUnits[0].Amount.Value)
}

func TestCreateOrderNoRequestIDHeader(t *testing.T) {
	fake := &fakePayPal{t: t, orderResponse: `{"id": "ord_1", "status": "CREATED"}`}
	client := newTestClient(t, fake)

	_, err := client.CreateOrder(context.Background(), 55000, "zar", "")
	require.NoError(t, err)
	assert.Empty(t, fake.lastRequestID)
}

func TestCreateOrderTokenFailure(t *testing.T) {
	fake := &fakePayPal{t: t, tokenStatus: http.StatusUnauthorized}
	client := newTestClient(t, fake)

	_, err := client.CreateOrder(context.Background(), 55000, "zar", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paypal token error")
}

func TestCreateOrderProviderError(t *testing.T) {
	fake := &fakePayPal{t: t, orderStatus: http.StatusUnprocessableEntity, orderResponse: `{"name": "INVALID_REQUEST"}`}
	client := newTestClient(t, fake)

	_, err := client.CreateOrder(context.Background(), 55000, "zar", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestCreateOrderMissingID(t *testing.T) {
	fake := &fakePayPal{t: t, orderResponse: `{"status": "CREATED"}`}
	client := newTestClient(t, fake)

	_, err := client.CreateOrder(context.Background(), 55000, "zar", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestCaptureOrder(t *testing.T) {
	fake := &fakePayPal{t: t}
	client := newTestClient(t, fake)

	result, err := client.CaptureOrder(context.Background(), "ord_1")
	require.NoError(t, err)
	assert.Equal(t, "ord_1", result.ID)
	assert.Equal(t, "COMPLETED", result.Status)
	assert.JSONEq(t, `{"id": "ord_1", "status": "COMPLETED", "purchase_units": []}`, string(result.Raw))
}
