package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rkaushal27/stargaze-booking/pkg/logging"
)

// Order is the provider's view of a created payment order. The id is the
// correlation key for the rest of the booking attempt.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Client talks to the Razorpay Orders API using server-held credentials.
// The key secret never leaves the server: it authenticates order creation
// and keys payment-signature verification.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient constructs a Razorpay client.
func NewClient(keyID, keySecret string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    "https://api.razorpay.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// WithBaseURL overrides the Razorpay API host (tests, sandboxes).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		return c
	}
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithTimeout overrides the HTTP client timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder registers an order for the given amount in minor units. Any
// non-success provider response maps to ErrProvider.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*Order, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, ErrMissingCredentials
	}

	payload, err := json.Marshal(createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  fmt.Sprintf("rcpt_%d", time.Now().UnixNano()),
	})
	if err != nil {
		return nil, fmt.Errorf("payments: marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("payments: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments: order request: %w", ErrProvider)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("payments: read response: %w", ErrProvider)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("razorpay order creation failed", "status", resp.StatusCode)
		return nil, fmt.Errorf("payments: provider returned status %d: %w", resp.StatusCode, ErrProvider)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("payments: decode order: %w", ErrProvider)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("payments: provider returned order without id: %w", ErrProvider)
	}

	c.logger.Info("payment order created", "order_id", order.ID, "amount", order.Amount, "currency", order.Currency)
	return &order, nil
}

// VerifySignature checks the provider's payment-completion signature. It is
// the sole proof that a payment actually completed; a client-reported
// success flag is never trusted on its own.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(c.keySecret, orderID, paymentID, signature)
}
