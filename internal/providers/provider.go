package providers

import (
	"context"
)

// CheckoutPayload is the provider-agnostic input for creating a hosted
// checkout session. Amount is in minor currency units.
type CheckoutPayload struct {
	Reference   string
	Amount      int64
	Currency    string
	Description string
	RedirectURL string
	ReturnURL   string
}

// CheckoutResult is the normalized provider response.
type CheckoutResult struct {
	ID          string
	CheckoutURL string
	Reference   string
	Amount      int64
	Currency    string
}

type Provider interface {
	// Name returns the provider name.
	Name() string
	// CreateCheckout opens a hosted checkout session with the provider.
	CreateCheckout(ctx context.Context, payload CheckoutPayload) (*CheckoutResult, error)
}
