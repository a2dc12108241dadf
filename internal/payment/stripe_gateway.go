package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeGateway implements Gateway for card payments. Charges run
// off-session: the user already confirmed on the summary step, the bank
// must not demand an interactive step afterwards.
type StripeGateway struct {
	client *client.API
}

// NewStripeGateway builds a gateway with its own client instance, no
// package-global stripe state.
func NewStripeGateway(apiKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &StripeGateway{client: sc}
}

// ChargeAttempt executes one synchronous charge.
func (sg *StripeGateway) ChargeAttempt(ctx context.Context, req Request) (*Result, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.PaymentMethodID == "" || req.CustomerID == "" {
		return nil, ErrNoPaymentMethod
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerID),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	// One idempotency key per wizard session: a network failure after a
	// successful charge must not double-charge on retry.
	if req.ReferenceID != "" {
		params.IdempotencyKey = stripe.String(req.ReferenceID)
	}
	if len(req.Metadata) > 0 {
		params.Metadata = make(map[string]string, len(req.Metadata))
		for k, v := range req.Metadata {
			params.Metadata[k] = v
		}
	}
	params.Context = ctx

	pi, err := sg.client.PaymentIntents.New(params)
	if err != nil {
		return nil, sg.mapStripeError(err)
	}

	// Network success is not payment success, check the intent status.
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &Result{
				TransactionID: pi.ID,
				Status:        Status(pi.Status),
				PaidAt:        time.Now(),
			},
			fmt.Errorf("%w: status is %s", ErrPaymentFailed, pi.Status)
	}

	return &Result{
		TransactionID: pi.ID,
		Status:        StatusSucceeded,
		PaidAt:        time.Now(),
	}, nil
}

// mapStripeError translates stripe-go errors into domain errors so the
// library type never leaks past this package.
func (sg *StripeGateway) mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Code {
		case stripe.ErrorCodeCardDeclined:
			return fmt.Errorf("%w: card was declined", ErrPaymentFailed)
		case stripe.ErrorCodeExpiredCard:
			return fmt.Errorf("%w: card has expired", ErrPaymentFailed)
		case stripe.ErrorCodeBalanceInsufficient:
			return fmt.Errorf("%w: insufficient funds", ErrPaymentFailed)
		}
		if stripeErr.HTTPStatusCode >= http.StatusInternalServerError {
			return ErrProviderDown
		}
	}
	return fmt.Errorf("gateway internal error: %w", err)
}
