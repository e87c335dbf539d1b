// Package exchangerate implements the external rate provider port against an
// exchangerate-api.com v6 compatible HTTP API.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/invodesk/invoice_analytics_app/internal/apperrors"
	portsprov "github.com/invodesk/invoice_analytics_app/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// Client fetches pair rates over HTTP. Every failure mode (transport error,
// non-2xx status, error payload, unusable rate) is reported as
// apperrors.ErrRateUnavailable; the caller decides whether to retry.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ portsprov.RateProvider = (*Client)(nil)

// pairResponse is the v6 /pair response shape.
// See https://www.exchangerate-api.com/docs/pair-conversion-requests
type pairResponse struct {
	Result         string          `json:"result"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	ErrorType      string          `json:"error-type,omitempty"`
}

// NewClient creates a provider client. The timeout bounds the whole request
// so one slow provider call cannot stall a request handler indefinitely.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRate returns units of toCurrency per unit of fromCurrency.
func (c *Client) FetchRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, fromCurrency, toCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to build request: %v", apperrors.ErrRateUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: request failed: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: provider returned status %d", apperrors.ErrRateUnavailable, resp.StatusCode)
	}

	var payload pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrRateUnavailable, err)
	}

	if payload.Result != "success" {
		return decimal.Zero, fmt.Errorf("%w: provider returned result=%q error-type=%q", apperrors.ErrRateUnavailable, payload.Result, payload.ErrorType)
	}
	if !payload.ConversionRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: provider returned non-positive rate %s", apperrors.ErrRateUnavailable, payload.ConversionRate)
	}

	return payload.ConversionRate, nil
}
