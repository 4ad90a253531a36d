package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every gateway call; Chapa holds requests for up to
// a few seconds while it provisions a checkout session.
const DefaultTimeout = 10 * time.Second

const statusSuccess = "success"

// Client talks to the Chapa REST API (transaction initialize / verify).
// It never retries and never inspects HTTP status codes beyond decoding the
// body: any response Chapa managed to send is handed back to the caller as a
// Response, and only transport failures surface as errors.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
}

type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	TxRef       string `json:"tx_ref"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type TransactionData struct {
	CheckoutURL string `json:"checkout_url,omitempty"`
	TxRef       string `json:"tx_ref,omitempty"`
	Status      string `json:"status,omitempty"`
}

type Response struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    *TransactionData `json:"data,omitempty"`
}

func (r *Response) IsSuccess() bool {
	return r.Status == statusSuccess
}

// Initialize creates a hosted checkout session for the given reference.
// POST /transaction/initialize
func (c *Client) Initialize(ctx context.Context, req *InitializeRequest) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("chapa: marshal initialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chapa: build initialize request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq)
}

// Verify asks Chapa for the authoritative state of a transaction.
// GET /transaction/verify/{tx_ref}
func (c *Client) Verify(ctx context.Context, txRef string) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, fmt.Errorf("chapa: build verify request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chapa: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chapa: read response: %w", err)
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("chapa: decode response: %w", err)
	}

	return &parsed, nil
}
