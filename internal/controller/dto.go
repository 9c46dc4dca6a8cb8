package controller

import (
	"encoding/json"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money on the wire,
// order ids that arrive as either strings or numbers, validation tags).
// Controllers convert these to domain types before calling business logic.

// CreateCheckoutRequest holds the input for creating a hosted checkout.
// Amount is in minor currency units (cents); a pointer distinguishes a
// missing field from an explicit zero.
type CreateCheckoutRequest struct {
	Amount      *float64   `json:"amount" validate:"required,gt=0"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	Description string     `json:"description"`
	OrderID     FlexibleID `json:"order_id"`
	RedirectURL string     `json:"redirect_url" validate:"required"`
}

// FlexibleID accepts both JSON strings and JSON numbers; Shopify order ids
// show up as either depending on the theme.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// --- Response DTOs ---

// CreateCheckoutResponse is the success payload for POST /create-checkout.
type CreateCheckoutResponse struct {
	Success           bool   `json:"success"`
	CheckoutURL       string `json:"checkout_url"`
	CheckoutReference string `json:"checkout_reference"`
	CheckoutID        string `json:"checkout_id"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
}

// ErrorResponse is the error payload shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
