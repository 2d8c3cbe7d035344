package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeResult is the gateway's opaque, binary outcome.
type ChargeResult struct {
	Success       bool
	TransactionID string
}

// PaymentGateway charges an amount against the external payment provider.
// The call may take unbounded time; callers bound it with a context
// deadline and treat expiry as a failed charge, never as retryable.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal) (ChargeResult, error)
}
