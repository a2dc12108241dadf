package payment

import (
	"context"
	"errors"
	"time"
)

// Standard payment errors. The summary step maps these onto inline
// messages, everything else is treated as a retryable gateway issue.
var (
	ErrPaymentFailed   = errors.New("payment gateway rejected the transaction")
	ErrInvalidAmount   = errors.New("invalid payment amount")
	ErrNoPaymentMethod = errors.New("no valid payment method on file")
	ErrProviderDown    = errors.New("payment provider is currently unavailable")
)

// Request carries everything a gateway needs for one charge.
type Request struct {
	ReferenceID     string            // idempotency key, one per wizard session
	AmountCents     int64             // total price in pesewas
	Currency        string            // e.g. "ghs"
	CustomerID      string            // gateway-side customer
	PaymentMethodID string            // saved card / wallet token
	Description     string            // appears on the statement
	Metadata        map[string]string // shipment code, tracking id etc.
}

// Result is the outcome of a charge attempt.
type Result struct {
	TransactionID string
	Status        Status
	PaidAt        time.Time
}

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusSucceeded      Status = "SUCCEEDED"
	StatusFailed         Status = "FAILED"
	StatusRequiresAction Status = "REQUIRES_ACTION"
)

// Gateway is the seam between the send flow and whichever provider is
// configured. Mobile-money confirmations arrive out of band and use the
// noop gateway, card payments go through Stripe.
type Gateway interface {
	ChargeAttempt(ctx context.Context, req Request) (*Result, error)
}

// NoopGateway accepts every charge. Used when payment is confirmed
// outside the app (mobile money agent flow) and in tests.
type NoopGateway struct{}

func (NoopGateway) ChargeAttempt(ctx context.Context, req Request) (*Result, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Result{
		TransactionID: "noop-" + req.ReferenceID,
		Status:        StatusSucceeded,
		PaidAt:        time.Now(),
	}, nil
}
