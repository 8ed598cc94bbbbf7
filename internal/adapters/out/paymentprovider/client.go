// Package paymentprovider talks to the external payment provider's REST API.
// Only intent creation goes over the wire; callback signatures are verified
// locally with the shared secret.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.PaymentProvider against the provider's order API.
// Requests are authenticated with the key pair over HTTP basic auth.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

// NewClient creates a payment provider client.
func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: defaultTimeout},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreatePaymentIntent registers the amount with the provider and returns the
// provider's order reference.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount kernel.Money, currency string) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount.Amount(),
		Currency: currency,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed createOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("payment provider response: %w", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("payment provider returned an empty order id")
	}

	return parsed.ID, nil
}
