package service

import (
	"context"
	"time"

	"github.com/cassiomorais/sumup-bridge/internal/domain/checkout"
	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/observability"
	"github.com/cassiomorais/sumup-bridge/internal/providers"
	"github.com/rs/zerolog"
)

// CheckoutService relays checkout-creation requests to the payment provider.
// It owns reference generation and input defaulting; the provider client owns
// the wire format and token lifecycle.
type CheckoutService struct {
	provider providers.Provider
	logger   zerolog.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

type CheckoutServiceOption func(*CheckoutService)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) CheckoutServiceOption {
	return func(s *CheckoutService) { s.logger = logger }
}

// WithMetrics records checkout counters and durations.
func WithMetrics(m *observability.Metrics) CheckoutServiceOption {
	return func(s *CheckoutService) { s.metrics = m }
}

// WithClock injects the clock used for reference timestamps.
func WithClock(now func() time.Time) CheckoutServiceOption {
	return func(s *CheckoutService) { s.now = now }
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(provider providers.Provider, opts ...CheckoutServiceOption) *CheckoutService {
	s := &CheckoutService{
		provider: provider,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateCheckout validates the request, applies defaults, and opens a hosted
// checkout session with the provider. One request produces at most one
// session; there are no retries.
func (s *CheckoutService) CreateCheckout(ctx context.Context, req checkout.Request) (*checkout.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := s.now()
	reference := checkout.NewReference(start)

	result, err := s.provider.CreateCheckout(ctx, providers.CheckoutPayload{
		Reference:   reference,
		Amount:      req.Amount,
		Currency:    req.EffectiveCurrency(),
		Description: req.EffectiveDescription(),
		RedirectURL: req.RedirectURL,
		ReturnURL:   req.RedirectURL,
	})
	s.observe(start, err)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("reference", reference).
			Msg("checkout creation failed")
		return nil, err
	}

	s.logger.Info().
		Str("provider", s.provider.Name()).
		Str("checkout_id", result.ID).
		Str("reference", result.Reference).
		Int64("amount", result.Amount).
		Str("currency", result.Currency).
		Msg("checkout created")

	return &checkout.Session{
		CheckoutURL: result.CheckoutURL,
		Reference:   result.Reference,
		ID:          result.ID,
		Amount:      result.Amount,
		Currency:    result.Currency,
	}, nil
}

func (s *CheckoutService) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.CheckoutsTotal.WithLabelValues(status).Inc()
	s.metrics.CheckoutDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
