package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	liveBaseURL    = "https://api-m.paypal.com"
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"

	requestTimeout = 15 * time.Second
)

// Client talks to the PayPal REST API with server-held credentials. Every
// call re-authenticates via the client-credentials grant; volumes are low
// enough that token caching is not worth the bookkeeping yet.
// TODO: cache the access token for its advertised expires_in.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

// NewClient builds a client for the given environment ("sandbox" or "live";
// anything else means live, matching the hosted configuration default).
func NewClient(clientID, clientSecret, env string) *Client {
	base := liveBaseURL
	if strings.EqualFold(env, "sandbox") {
		base = sandboxBaseURL
	}
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      base,
		httpClient:   &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether server credentials are present.
func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("paypal token response unreadable: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token error: status %d: %s", resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("paypal token response invalid: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("paypal token response missing access_token")
	}
	return token.AccessToken, nil
}

// Order is the subset of the provider order we care about.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CaptureResult carries the parsed status plus the raw capture payload, which
// is returned to the browser unchanged.
type CaptureResult struct {
	ID     string
	Status string
	Raw    json.RawMessage
}

// FormatAmount renders minor units as the decimal string PayPal expects.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// CreateOrder creates a CAPTURE-intent order for the given total. requestID,
// when non-empty, is sent as PayPal-Request-Id so retried submissions do not
// mint duplicate orders.
func (c *Client) CreateOrder(ctx context.Context, totalCents int64, currency, requestID string) (Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return Order{}, err
	}

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount": map[string]string{
					"currency_code": strings.ToUpper(currency),
					"value":         FormatAmount(totalCents),
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("PayPal-Request-Id", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("paypal order request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Order{}, fmt.Errorf("paypal order response unreadable: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Order{}, fmt.Errorf("paypal order error: status %d: %s", resp.StatusCode, respBody)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return Order{}, fmt.Errorf("paypal order response invalid: %w", err)
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("paypal order response missing id")
	}
	return order, nil
}

// CaptureOrder finalises a previously created order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return CaptureResult{}, err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, nil)
	if err != nil {
		return CaptureResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("paypal capture request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("paypal capture response unreadable: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return CaptureResult{}, fmt.Errorf("paypal capture error: status %d: %s", resp.StatusCode, respBody)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return CaptureResult{}, fmt.Errorf("paypal capture response invalid: %w", err)
	}

	return CaptureResult{ID: order.ID, Status: order.Status, Raw: respBody}, nil
}
