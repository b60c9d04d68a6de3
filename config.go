package catalog

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
)

// Config holds the process configuration the core consumes. The two secrets
// have no defaults: a process without them must fail at startup instead of
// silently producing insecure tokens or ciphertext.
type Config struct {
	HTTPAddr    string
	Environment string
	DatabaseDSN string

	JWTSigningKey string
	JWTExpiration time.Duration
	JWTIssuer     string

	PriceCipherSecret string
	PriceCipherMode   CipherMode
}

// ConfigFromEnv reads configuration from the environment, applying defaults
// for everything except the secrets.
func ConfigFromEnv() *Config {
	cfg := &Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":3000"),
		Environment:       envOr("ENVIRONMENT", "development"),
		DatabaseDSN:       envOr("DATABASE_DSN", "file:catalog.db?cache=shared"),
		JWTSigningKey:     os.Getenv("JWT_SECRET"),
		JWTIssuer:         envOr("JWT_ISSUER", "go-catalog"),
		PriceCipherSecret: os.Getenv("PRICE_HASH_KEY"),
		PriceCipherMode:   CipherMode(envOr("PRICE_CIPHER_MODE", string(CipherModeGCM))),
	}

	cfg.JWTExpiration = 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.JWTExpiration = d
		}
	}

	return cfg
}

// Validate rejects configurations that would run insecurely or not at all
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.HTTPAddr, validation.Required),
		validation.Field(&c.JWTSigningKey, validation.Required.Error("JWT_SECRET is required")),
		validation.Field(&c.JWTExpiration, validation.Required),
		validation.Field(&c.PriceCipherSecret, validation.Required.Error("PRICE_HASH_KEY is required")),
		validation.Field(&c.PriceCipherMode, validation.In(CipherModeGCM, CipherModeLegacyCBC)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid configuration")
	}
	return nil
}

// IsProduction gates how much error detail responses carry
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
