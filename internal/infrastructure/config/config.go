package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	SumUp         SumUpConfig         `mapstructure:"sumup"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORS            CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// SumUpConfig holds the OAuth client credentials and API endpoints. All five
// fields are required; the process refuses to start without them.
type SumUpConfig struct {
	PublicKey    string `mapstructure:"public_key"`
	SecretKey    string `mapstructure:"secret_key"`
	MerchantCode string `mapstructure:"merchant_code"`
	APIBase      string `mapstructure:"api_base"`
	TokenURL     string `mapstructure:"token_url"`
}

type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	EnableTracing  bool   `mapstructure:"enable_tracing"`
}

func Load() (*Config, error) {
	// A local .env file is optional and never overrides the real environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	// Config file is optional
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	required := []struct {
		envName string
		value   string
	}{
		{"PUBLIC_API_KEY", c.SumUp.PublicKey},
		{"SECRET_API_KEY", c.SumUp.SecretKey},
		{"SUMUP_MERCHANT_ID", c.SumUp.MerchantCode},
		{"SUMUP_API_BASE", c.SumUp.APIBase},
		{"SUMUP_TOKEN_URL", c.SumUp.TokenURL},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("missing required environment variable: %s", r.envName))
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

// bindEnv maps the environment variable names the deployment already uses
// onto viper keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("sumup.public_key", "PUBLIC_API_KEY")
	_ = v.BindEnv("sumup.secret_key", "SECRET_API_KEY")
	_ = v.BindEnv("sumup.merchant_code", "SUMUP_MERCHANT_ID")
	_ = v.BindEnv("sumup.api_base", "SUMUP_API_BASE")
	_ = v.BindEnv("sumup.token_url", "SUMUP_TOKEN_URL")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("observability.log_level", "LOG_LEVEL")
	_ = v.BindEnv("observability.jaeger_endpoint", "JAEGER_ENDPOINT")
	_ = v.BindEnv("observability.enable_tracing", "ENABLE_TRACING")
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")
	// The storefront posts cross-origin, so CORS is wide open unless narrowed.
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("server.cors.allow_credentials", false)

	// Observability defaults
	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("observability.enable_tracing", false)
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
