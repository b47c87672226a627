// Package payment models the external payment-capture capability. The
// engine core never talks to a gateway; it only learns the outcome,
// correlated back by order id.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dukapos/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Errors returned by gateways.
var (
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Capture is the result of a successful capture.
type Capture struct {
	Method    string
	Amount    decimal.Decimal
	Reference string
}

// Gateway captures a payment of the given amount with the given
// method. Implementations may block on external calls and must honor
// ctx cancellation.
type Gateway interface {
	Capture(ctx context.Context, method string, amount decimal.Decimal) (Capture, error)
}

// ValidMethod reports whether m is an accepted tender type.
func ValidMethod(m string) bool {
	switch m {
	case enum.PaymentMethodCash, enum.PaymentMethodMpesa, enum.PaymentMethodCard:
		return true
	}
	return false
}

// Simulated is a gateway that approves every valid capture locally.
// Used in development and tests in place of a real M-Pesa/card
// processor.
type Simulated struct {
	// FailWith, when set, is returned from every Capture. Lets tests
	// exercise the decline path.
	FailWith error

	mu  sync.Mutex
	seq int
}

// Capture validates the request and approves it with a synthetic
// reference number.
func (g *Simulated) Capture(ctx context.Context, method string, amount decimal.Decimal) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return Capture{}, err
	}
	if !ValidMethod(method) {
		return Capture{}, ErrInvalidMethod
	}
	if !amount.IsPositive() {
		return Capture{}, ErrInvalidAmount
	}
	if g.FailWith != nil {
		return Capture{}, g.FailWith
	}
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()
	return Capture{
		Method:    method,
		Amount:    amount,
		Reference: fmt.Sprintf("SIM-%06d", seq),
	}, nil
}
