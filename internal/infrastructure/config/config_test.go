package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PUBLIC_API_KEY", "pk_test")
	t.Setenv("SECRET_API_KEY", "sk_test")
	t.Setenv("SUMUP_MERCHANT_ID", "M1234")
	t.Setenv("SUMUP_API_BASE", "https://api.sumup.test/v0.1")
	t.Setenv("SUMUP_TOKEN_URL", "https://api.sumup.test/token")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pk_test", cfg.SumUp.PublicKey)
	assert.Equal(t, "sk_test", cfg.SumUp.SecretKey)
	assert.Equal(t, "M1234", cfg.SumUp.MerchantCode)
	assert.Equal(t, "https://api.sumup.test/v0.1", cfg.SumUp.APIBase)
	assert.Equal(t, "https://api.sumup.test/token", cfg.SumUp.TokenURL)

	assert.Equal(t, 3000, cfg.Server.Port, "port defaults to 3000")
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.CORS.AllowedOrigins)
}

func TestLoad_PortOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	tests := []string{
		"PUBLIC_API_KEY",
		"SECRET_API_KEY",
		"SUMUP_MERCHANT_ID",
		"SUMUP_API_BASE",
		"SUMUP_TOKEN_URL",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}
