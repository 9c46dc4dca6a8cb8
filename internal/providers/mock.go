package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProvider is an in-memory Provider for tests. It records every payload
// it receives and answers with a synthetic hosted-checkout URL.
type MockProvider struct {
	name string
	err  error

	mu       sync.Mutex
	payloads []CheckoutPayload
}

type MockProviderOption func(*MockProvider)

// WithError makes every CreateCheckout call fail with err.
func WithError(err error) MockProviderOption {
	return func(p *MockProvider) { p.err = err }
}

func NewMockProvider(name string, opts ...MockProviderOption) *MockProvider {
	p := &MockProvider{name: name}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *MockProvider) Name() string { return p.name }

func (p *MockProvider) CreateCheckout(_ context.Context, payload CheckoutPayload) (*CheckoutResult, error) {
	p.mu.Lock()
	p.payloads = append(p.payloads, payload)
	p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}

	id := fmt.Sprintf("%s_chk_%s", p.name, uuid.New().String()[:8])
	return &CheckoutResult{
		ID:          id,
		CheckoutURL: fmt.Sprintf("https://pay.%s.test/%s", p.name, id),
		Reference:   payload.Reference,
		Amount:      payload.Amount,
		Currency:    payload.Currency,
	}, nil
}

// Payloads returns the payloads seen so far, in call order.
func (p *MockProvider) Payloads() []CheckoutPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]CheckoutPayload, len(p.payloads))
	copy(out, p.payloads)
	return out
}
