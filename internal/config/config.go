package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/slugsera/backend-shop/internal/pricing"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	HomeCountry              string
	HomeCountryName          string
	FreeShippingThreshold    decimal.Decimal
	DomesticShippingFee      decimal.Decimal
	InternationalShippingFee decimal.Decimal
	DomesticTaxRateBps       int64
	DiscountRatesBps         map[string]int64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		HomeCountry:              valueOrDefault(k.String("HOME_COUNTRY"), "IN"),
		HomeCountryName:          valueOrDefault(k.String("HOME_COUNTRY_NAME"), "India"),
		FreeShippingThreshold:    parseDecimal(k.String("FREE_SHIPPING_THRESHOLD"), "150"),
		DomesticShippingFee:      parseDecimal(k.String("DOMESTIC_SHIPPING_FEE"), "8"),
		InternationalShippingFee: parseDecimal(k.String("INTL_SHIPPING_FEE"), "25"),
		DomesticTaxRateBps:       int64(k.Int("DOMESTIC_TAX_RATE_BPS")),
	}
	if cfg.DomesticTaxRateBps == 0 && strings.TrimSpace(k.String("DOMESTIC_TAX_RATE_BPS")) == "" {
		cfg.DomesticTaxRateBps = 500
	}

	codes, err := parseDiscountCodes(valueOrDefault(k.String("DISCOUNT_CODES"), "SLUG10:1000,WELCOME10:1000,VIP20:2000"))
	if err != nil {
		return nil, err
	}
	cfg.DiscountRatesBps = codes

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

// Pricing assembles the calculator policy from the loaded configuration.
func (c *Config) Pricing() pricing.Config {
	return pricing.Config{
		HomeCountry:              c.HomeCountry,
		HomeCountryName:          c.HomeCountryName,
		FreeShippingThreshold:    c.FreeShippingThreshold,
		DomesticShippingFee:      c.DomesticShippingFee,
		InternationalShippingFee: c.InternationalShippingFee,
		DomesticTaxRateBps:       c.DomesticTaxRateBps,
		DiscountRatesBps:         c.DiscountRatesBps,
	}
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// parseDiscountCodes reads a "CODE:bps" comma-separated table. Codes are
// stored uppercase so lookups stay case-insensitive.
func parseDiscountCodes(value string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, entry := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		code, rate, found := strings.Cut(trimmed, ":")
		if !found {
			return nil, fmt.Errorf("invalid DISCOUNT_CODES entry %q", trimmed)
		}
		bps, err := strconv.ParseInt(strings.TrimSpace(rate), 10, 64)
		if err != nil || bps <= 0 {
			return nil, fmt.Errorf("invalid DISCOUNT_CODES rate in %q", trimmed)
		}
		out[strings.ToUpper(strings.TrimSpace(code))] = bps
	}
	return out, nil
}

func parseDecimal(value, fallback string) decimal.Decimal {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := decimal.NewFromString(base)
	if err != nil {
		d = decimal.RequireFromString(fallback)
	}
	return d
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
