// Package sumup implements the providers.Provider interface against the
// SumUp hosted-checkout API, using a client-credentials OAuth grant with a
// single cached bearer token.
package sumup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	domainErrors "github.com/cassiomorais/sumup-bridge/internal/domain/errors"
	"github.com/cassiomorais/sumup-bridge/internal/providers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Config holds the SumUp API credentials and endpoints.
type Config struct {
	PublicKey    string
	SecretKey    string
	MerchantCode string
	APIBase      string
	TokenURL     string
}

// Client talks to the SumUp checkout API.
type Client struct {
	httpClient   *http.Client
	logger       zerolog.Logger
	cache        *TokenCache
	tokenFetches prometheus.Counter

	publicKey    string
	secretKey    string
	merchantCode string
	apiBase      string
	tokenURL     string
}

type Option func(*Client)

// WithHTTPClient replaces the transport, used by tests and by callers that
// want explicit timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock injects the clock used by the token cache.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) { c.cache = NewTokenCache(clock) }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTokenFetchCounter records every network token fetch.
func WithTokenFetchCounter(counter prometheus.Counter) Option {
	return func(c *Client) { c.tokenFetches = counter }
}

func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		logger:       zerolog.Nop(),
		cache:        NewTokenCache(nil),
		publicKey:    cfg.PublicKey,
		secretKey:    cfg.SecretKey,
		merchantCode: cfg.MerchantCode,
		apiBase:      strings.TrimRight(cfg.APIBase, "/"),
		tokenURL:     cfg.TokenURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string { return "sumup" }

type checkoutRequestBody struct {
	CheckoutReference string `json:"checkout_reference"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	Description       string `json:"description"`
	MerchantCode      string `json:"merchant_code"`
	RedirectURL       string `json:"redirect_url"`
	ReturnURL         string `json:"return_url"`
}

type checkoutResponseBody struct {
	ID                string  `json:"id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
	RedirectURI       string  `json:"redirect_uri"`
	CheckoutURL       string  `json:"checkout_url"`
	CheckoutReference string  `json:"checkout_reference"`
}

type checkoutErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreateCheckout opens a hosted checkout session. The return URL mirrors the
// redirect URL when the payload leaves it empty.
func (c *Client) CreateCheckout(ctx context.Context, payload providers.CheckoutPayload) (*providers.CheckoutResult, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	returnURL := payload.ReturnURL
	if returnURL == "" {
		returnURL = payload.RedirectURL
	}

	body, err := json.Marshal(checkoutRequestBody{
		CheckoutReference: payload.Reference,
		Amount:            payload.Amount,
		Currency:          payload.Currency,
		Description:       payload.Description,
		MerchantCode:      c.merchantCode,
		RedirectURL:       payload.RedirectURL,
		ReturnURL:         returnURL,
	})
	if err != nil {
		return nil, domainErrors.NewUpstreamError("", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/checkouts", bytes.NewReader(body))
	if err != nil {
		return nil, domainErrors.NewUpstreamError("", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainErrors.NewUpstreamError("", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainErrors.NewUpstreamError("", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := upstreamCheckoutDetail(respBody)
		if detail == "" {
			detail = fmt.Sprintf("checkout endpoint returned status %d", resp.StatusCode)
		}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("detail", detail).
			Str("reference", payload.Reference).
			Msg("SumUp checkout creation failed")
		return nil, domainErrors.NewUpstreamError(detail, nil)
	}

	var cr checkoutResponseBody
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return nil, domainErrors.NewUpstreamError("", err)
	}

	checkoutURL := cr.RedirectURI
	if checkoutURL == "" {
		checkoutURL = cr.CheckoutURL
	}
	if checkoutURL == "" {
		return nil, domainErrors.NewUpstreamError("", domainErrors.ErrEmptyCheckoutURL)
	}
	reference := cr.CheckoutReference
	if reference == "" {
		reference = cr.ID
	}

	c.logger.Info().
		Str("checkout_id", cr.ID).
		Str("reference", reference).
		Msg("SumUp checkout created")

	return &providers.CheckoutResult{
		ID:          cr.ID,
		CheckoutURL: checkoutURL,
		Reference:   reference,
		Amount:      int64(math.Round(cr.Amount)),
		Currency:    cr.Currency,
	}, nil
}

func upstreamCheckoutDetail(body []byte) string {
	var ce checkoutErrorBody
	if err := json.Unmarshal(body, &ce); err != nil {
		return ""
	}
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Error
}
