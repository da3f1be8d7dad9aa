package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":          "postgres://localhost/shop",
		"PORT":                  "",
		"HOME_COUNTRY":          "",
		"HOME_COUNTRY_NAME":     "",
		"DISCOUNT_CODES":        "",
		"DOMESTIC_TAX_RATE_BPS": "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "IN", cfg.HomeCountry)
	require.Equal(t, "India", cfg.HomeCountryName)
	require.Equal(t, int64(500), cfg.DomesticTaxRateBps)
	require.Equal(t, "150", cfg.FreeShippingThreshold.String())
	require.Equal(t, int64(1000), cfg.DiscountRatesBps["SLUG10"])
	require.Equal(t, int64(1000), cfg.DiscountRatesBps["WELCOME10"])
	require.Equal(t, int64(2000), cfg.DiscountRatesBps["VIP20"])
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
	})
	require.Error(t, err)
}

func TestLoadCustomDiscountTable(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":   "postgres://localhost/shop",
		"DISCOUNT_CODES": "summer25:2500, launch5:500",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2500), cfg.DiscountRatesBps["SUMMER25"])
	require.Equal(t, int64(500), cfg.DiscountRatesBps["LAUNCH5"])
}

func TestLoadRejectsMalformedDiscountTable(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":   "postgres://localhost/shop",
		"DISCOUNT_CODES": "SLUG10",
	})
	require.Error(t, err)
}

func TestPricingConfigAssembly(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":            "postgres://localhost/shop",
		"FREE_SHIPPING_THRESHOLD": "200",
		"DOMESTIC_SHIPPING_FEE":   "10",
		"INTL_SHIPPING_FEE":       "30",
		"DOMESTIC_TAX_RATE_BPS":   "1800",
		"DISCOUNT_CODES":          "",
	})
	require.NoError(t, err)
	p := cfg.Pricing()
	require.Equal(t, "200", p.FreeShippingThreshold.String())
	require.Equal(t, "10", p.DomesticShippingFee.String())
	require.Equal(t, "30", p.InternationalShippingFee.String())
	require.Equal(t, int64(1800), p.DomesticTaxRateBps)
	require.True(t, p.Domestic("india"))
	require.False(t, p.Domestic("US"))
}
