package sumup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/cassiomorais/sumup-bridge/internal/domain/errors"
)

const (
	// safetyMargin keeps a cached token from being used right up to its
	// expiry; tokens within five minutes of expiring are refetched.
	safetyMargin = 5 * time.Minute

	// defaultTTL applies when the token response omits expires_in.
	defaultTTL = 3600 * time.Second
)

// TokenCache holds the single process-wide bearer token slot. Each request
// runs on its own goroutine, so the slot is guarded by a mutex. There is no
// single-flight: concurrent requests that both observe a stale token each
// fetch a fresh one, and the last write wins.
type TokenCache struct {
	clock func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenCache creates an empty cache. A nil clock defaults to time.Now,
// tests inject a fixed clock.
func NewTokenCache(clock func() time.Time) *TokenCache {
	if clock == nil {
		clock = time.Now
	}
	return &TokenCache{clock: clock}
}

// IsValid reports whether a token is held and outlives the safety margin.
func (c *TokenCache) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != "" && c.expiresAt.After(c.clock().Add(safetyMargin))
}

// Get returns the cached token, if any.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return "", false
	}
	return c.token, true
}

// Set overwrites the slot. A ttl of zero or less falls back to one hour.
func (c *TokenCache) Set(token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expiresAt = c.clock().Add(ttl)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

// Token returns a bearer token for the SumUp API, reusing the cached one
// while it remains inside its validity window. A cache miss triggers a
// client-credentials grant against the configured token endpoint; there is
// no retry on failure.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.cache.IsValid() {
		if token, ok := c.cache.Get(); ok {
			c.logger.Debug().Msg("reusing cached SumUp token")
			return token, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", domainErrors.NewAuthError("", err)
	}
	req.SetBasicAuth(c.publicKey, c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domainErrors.NewAuthError("", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domainErrors.NewAuthError("", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := upstreamOAuthDetail(body)
		if detail == "" {
			detail = fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)
		}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("detail", detail).
			Msg("SumUp token fetch rejected")
		return "", domainErrors.NewAuthError(detail, nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", domainErrors.NewAuthError("", err)
	}
	if tr.AccessToken == "" {
		return "", domainErrors.NewAuthError("", domainErrors.ErrMissingAccessToken)
	}

	c.cache.Set(tr.AccessToken, time.Duration(tr.ExpiresIn)*time.Second)
	if c.tokenFetches != nil {
		c.tokenFetches.Inc()
	}
	c.logger.Info().Int64("expires_in", tr.ExpiresIn).Msg("SumUp token obtained")

	return tr.AccessToken, nil
}

// upstreamOAuthDetail extracts the most specific error description from an
// OAuth error body, mirroring the error_description > error > message order.
func upstreamOAuthDetail(body []byte) string {
	var oe oauthErrorResponse
	if err := json.Unmarshal(body, &oe); err != nil {
		return ""
	}
	switch {
	case oe.ErrorDescription != "":
		return oe.ErrorDescription
	case oe.Error != "":
		return oe.Error
	default:
		return oe.Message
	}
}
