package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "github.com/cassiomorais/sumup-bridge/internal/domain/errors"
	"github.com/cassiomorais/sumup-bridge/internal/infrastructure/config"
	"github.com/cassiomorais/sumup-bridge/internal/providers"
	"github.com/cassiomorais/sumup-bridge/internal/providers/sumup"
	"github.com/cassiomorais/sumup-bridge/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(provider providers.Provider) http.Handler {
	svc := service.NewCheckoutService(provider)
	return NewRouter(RouterDeps{
		CheckoutService: svc,
		CORSConfig:      config.CORSConfig{AllowedOrigins: []string{"*"}},
	})
}

func postCheckout(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/create-checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCheckout_Success(t *testing.T) {
	provider := providers.NewMockProvider("sumup")
	router := newTestRouter(provider)

	rec := postCheckout(t, router, `{"amount":2550,"currency":"EUR","order_id":"42","redirect_url":"https://shop.example/thank_you"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CreateCheckoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.CheckoutURL)
	assert.NotEmpty(t, resp.CheckoutID)
	assert.True(t, strings.HasPrefix(resp.CheckoutReference, "SHOPIFY-"))
	assert.Equal(t, int64(2550), resp.Amount)
	assert.Equal(t, "EUR", resp.Currency)

	payloads := provider.Payloads()
	require.Len(t, payloads, 1)
	assert.Equal(t, "Shopify Order #42", payloads[0].Description)
}

func TestCreateCheckout_RoundsFractionalAmount(t *testing.T) {
	provider := providers.NewMockProvider("sumup")
	router := newTestRouter(provider)

	rec := postCheckout(t, router, `{"amount":2549.6,"redirect_url":"https://shop.example/thank_you"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payloads := provider.Payloads()
	require.Len(t, payloads, 1)
	assert.Equal(t, int64(2550), payloads[0].Amount)
}

func TestCreateCheckout_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		errContains string
	}{
		{"missing amount", `{"redirect_url":"https://x/y"}`, "amount"},
		{"zero amount", `{"amount":0,"redirect_url":"https://x/y"}`, "amount"},
		{"negative amount", `{"amount":-10,"redirect_url":"https://x/y"}`, "amount"},
		{"non-numeric amount", `{"amount":"ten","redirect_url":"https://x/y"}`, "amount"},
		{"missing redirect_url", `{"amount":1000}`, "redirect_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := providers.NewMockProvider("sumup")
			router := newTestRouter(provider)

			rec := postCheckout(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.errContains)
			assert.Empty(t, provider.Payloads(), "provider must not be called on invalid input")
		})
	}
}

func TestCreateCheckout_ProviderErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		errContains string
	}{
		{
			name:        "auth failure",
			err:         domainErrors.NewAuthError("Unknown client", nil),
			errContains: "Unknown client",
		},
		{
			name:        "upstream failure",
			err:         domainErrors.NewUpstreamError("merchant not enabled", nil),
			errContains: "merchant not enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := providers.NewMockProvider("sumup", providers.WithError(tt.err))
			router := newTestRouter(provider)

			rec := postCheckout(t, router, `{"amount":1000,"redirect_url":"https://x/y"}`)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.errContains)
		})
	}
}

// End-to-end through the real SumUp client against a stub provider API.
func TestCreateCheckout_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok_1","expires_in":3600}`))
	})
	mux.HandleFunc("/checkouts", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CheckoutReference string `json:"checkout_reference"`
			Amount            int64  `json:"amount"`
			Currency          string `json:"currency"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{
			"id": "c_1",
			"amount": ` + "2550" + `,
			"currency": "` + body.Currency + `",
			"redirect_uri": "https://pay.example/c_1",
			"checkout_reference": "` + body.CheckoutReference + `"
		}`))
	})
	stub := httptest.NewServer(mux)
	defer stub.Close()

	client := sumup.New(sumup.Config{
		PublicKey:    "pk_test",
		SecretKey:    "sk_test",
		MerchantCode: "M1234",
		APIBase:      stub.URL,
		TokenURL:     stub.URL + "/token",
	})
	router := newTestRouter(client)

	rec := postCheckout(t, router, `{"amount":2550,"currency":"EUR","redirect_url":"https://shop.example/thank_you"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CreateCheckoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://pay.example/c_1", resp.CheckoutURL)
	assert.Equal(t, "c_1", resp.CheckoutID)
	assert.True(t, strings.HasPrefix(resp.CheckoutReference, "SHOPIFY-"))
	assert.Equal(t, int64(2550), resp.Amount)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestIndexAndHealth(t *testing.T) {
	router := newTestRouter(providers.NewMockProvider("sumup"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var index map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&index))
	assert.Equal(t, "running", index["status"])
	assert.NotEmpty(t, index["endpoints"])
	assert.NotEmpty(t, index["timestamp"])

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.NotEmpty(t, health["timestamp"])
}
