package checkout

import (
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/cassiomorais/sumup-bridge/internal/domain/errors"
	"github.com/google/uuid"
)

const (
	// DefaultCurrency is applied when the storefront omits the currency code.
	DefaultCurrency = "EUR"

	// DefaultDescription is applied when neither a description nor an order id is supplied.
	DefaultDescription = "Shopify Order Payment"

	referencePrefix = "SHOPIFY"
	suffixLength    = 9
)

// Request is a normalized checkout-creation request from the storefront.
// Amount is an integer number of minor currency units (cents).
type Request struct {
	Amount      int64
	Currency    string
	Description string
	OrderID     string
	RedirectURL string
}

// Validate checks the request invariants: a positive integer amount and a
// present redirect URL.
func (r Request) Validate() error {
	if r.Amount <= 0 {
		return domainErrors.NewValidationError("amount", "Invalid amount: must be a positive number (in cents)")
	}
	if strings.TrimSpace(r.RedirectURL) == "" {
		return domainErrors.NewValidationError("redirect_url", "Missing required field: redirect_url")
	}
	return nil
}

// EffectiveCurrency returns the currency code, defaulting to EUR.
func (r Request) EffectiveCurrency() string {
	if strings.TrimSpace(r.Currency) == "" {
		return DefaultCurrency
	}
	return r.Currency
}

// EffectiveDescription returns the description, falling back to
// "Shopify Order #<id>" when an order id is present and to the generic
// default otherwise.
func (r Request) EffectiveDescription() string {
	if strings.TrimSpace(r.Description) != "" {
		return r.Description
	}
	if strings.TrimSpace(r.OrderID) != "" {
		return fmt.Sprintf("Shopify Order #%s", r.OrderID)
	}
	return DefaultDescription
}

// Session is the normalized result of a created hosted-checkout session.
type Session struct {
	CheckoutURL string
	Reference   string
	ID          string
	Amount      int64
	Currency    string
}

// NewReference generates a checkout reference unique per call, of the form
// SHOPIFY-<epoch millis>-<9 alphanumeric chars>. The reference exists for
// reconciliation only; the provider does not deduplicate on it.
func NewReference(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
	return fmt.Sprintf("%s-%d-%s", referencePrefix, now.UnixMilli(), suffix)
}
