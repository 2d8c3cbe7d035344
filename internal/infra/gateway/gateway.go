// Package gateway adapts the external payment provider to the
// ports.PaymentGateway interface. The provider is a black box: it accepts
// an amount and answers with a binary outcome plus a transaction id.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-api/internal/core/ports"
)

var _ ports.PaymentGateway = (*HTTPGateway)(nil)

// HTTPGateway charges via a JSON POST to the provider's charge endpoint.
type HTTPGateway struct {
	client *http.Client
	url    string
}

func NewHTTPGateway(url string) *HTTPGateway {
	return &HTTPGateway{
		client: &http.Client{},
		url:    url,
	}
}

type chargeRequest struct {
	Amount string `json:"amount"`
}

type chargeResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
}

// Charge posts the amount to the provider. The caller bounds the call with
// a context deadline; expiry surfaces as an error, which the payment
// service records as a failed charge.
func (g *HTTPGateway) Charge(ctx context.Context, amount decimal.Decimal) (ports.ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{Amount: amount.StringFixed(2)})
	if err != nil {
		return ports.ChargeResult{}, fmt.Errorf("gateway: marshal charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return ports.ChargeResult{}, fmt.Errorf("gateway: build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.ChargeResult{}, fmt.Errorf("gateway: charge call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.ChargeResult{}, fmt.Errorf("gateway: charge returned status %d", resp.StatusCode)
	}

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.ChargeResult{}, fmt.Errorf("gateway: decode charge response: %w", err)
	}
	return ports.ChargeResult{Success: out.Success, TransactionID: out.TransactionID}, nil
}

var _ ports.PaymentGateway = (*Simulated)(nil)

// Simulated approves every charge. Local development only — wired when no
// GATEWAY_URL is configured.
type Simulated struct{}

func (Simulated) Charge(ctx context.Context, amount decimal.Decimal) (ports.ChargeResult, error) {
	slog.InfoContext(ctx, "simulated gateway charge", "amount", amount.StringFixed(2))
	return ports.ChargeResult{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN_%d", time.Now().UnixMilli()),
	}, nil
}
