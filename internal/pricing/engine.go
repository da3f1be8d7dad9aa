package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/slugsera/backend-shop/internal/catalog"
)

// ErrEmptyCart is returned when a quote is requested for a cart with no lines.
var ErrEmptyCart = errors.New("cart has no items")

// InvalidCartError indicates one or more cart lines reference products that
// do not resolve in the catalog. No partial breakdown is produced.
type InvalidCartError struct {
	Missing []string
}

func (e *InvalidCartError) Error() string {
	if len(e.Missing) == 0 {
		return "invalid product in cart"
	}
	return fmt.Sprintf("invalid product in cart: %s", strings.Join(e.Missing, ", "))
}

// InvalidQuantityError indicates a cart line with a non-positive quantity.
type InvalidQuantityError struct {
	Slug string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.Slug)
}

// CartLine is one requested product/quantity/variant entry in a quote or order.
type CartLine struct {
	ProductSlug string `json:"product_slug"`
	Qty         int    `json:"qty"`
	Size        string `json:"size"`
	Color       string `json:"color"`
}

// LineItem is one priced line of a breakdown, in cart order.
type LineItem struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Breakdown is the itemized pricing result. All monetary fields are rounded
// to two decimal places, and Total is computed from the rounded components so
// that Total == (Subtotal - Discount) + Shipping + Tax holds exactly.
type Breakdown struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Config carries the pricing policy: the static discount-code table, the
// shipping fee rules, and the tax rule. Rates are expressed in basis points.
type Config struct {
	HomeCountry              string
	HomeCountryName          string
	FreeShippingThreshold    decimal.Decimal
	DomesticShippingFee      decimal.Decimal
	InternationalShippingFee decimal.Decimal
	DomesticTaxRateBps       int64
	DiscountRatesBps         map[string]int64
}

// Domestic reports whether the destination country matches the configured
// home country, accepting both the ISO code and the full name. A blank
// destination defaults to the home country.
func (c Config) Domestic(country string) bool {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return true
	}
	return strings.EqualFold(trimmed, c.HomeCountry) || strings.EqualFold(trimmed, c.HomeCountryName)
}

// ProductLookup resolves cart slugs to authoritative catalog products in a
// single batched call. It returns at most one product per slug.
type ProductLookup interface {
	FindBySlugs(ctx context.Context, slugs []string) ([]catalog.Product, error)
}

// Engine computes order breakdowns. It is a pure function of its inputs and
// the lookup collaborator's current state; totals are always computed here,
// never taken from the client.
type Engine struct {
	products ProductLookup
	cfg      Config
}

// NewEngine constructs an Engine with the given product lookup and policy.
func NewEngine(products ProductLookup, cfg Config) *Engine {
	return &Engine{products: products, cfg: cfg}
}

// Quote prices a cart. Lines appear in the breakdown in input order. An
// unknown discount code applies zero discount; an unknown product slug fails
// the whole quote with *InvalidCartError.
func (e *Engine) Quote(ctx context.Context, lines []CartLine, discountCode, country string) (Breakdown, error) {
	if len(lines) == 0 {
		return Breakdown{}, ErrEmptyCart
	}

	// Dedupe slugs preserving first-seen order, then fetch in one batch.
	seen := make(map[string]struct{}, len(lines))
	slugs := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 {
			return Breakdown{}, &InvalidQuantityError{Slug: line.ProductSlug}
		}
		if _, ok := seen[line.ProductSlug]; ok {
			continue
		}
		seen[line.ProductSlug] = struct{}{}
		slugs = append(slugs, line.ProductSlug)
	}

	fetched, err := e.products.FindBySlugs(ctx, slugs)
	if err != nil {
		return Breakdown{}, fmt.Errorf("resolve cart products: %w", err)
	}
	bySlug := make(map[string]catalog.Product, len(fetched))
	for _, p := range fetched {
		bySlug[p.Slug] = p
	}
	if len(bySlug) != len(slugs) {
		missing := make([]string, 0, len(slugs))
		for _, slug := range slugs {
			if _, ok := bySlug[slug]; !ok {
				missing = append(missing, slug)
			}
		}
		return Breakdown{}, &InvalidCartError{Missing: missing}
	}

	items := make([]LineItem, len(lines))
	subtotal := decimal.Zero
	for i, line := range lines {
		p := bySlug[line.ProductSlug]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		items[i] = LineItem{
			Slug:      line.ProductSlug,
			Title:     p.Title,
			UnitPrice: p.Price,
			Qty:       line.Qty,
			LineTotal: lineTotal.Round(2),
		}
		subtotal = subtotal.Add(lineTotal)
	}

	discount := decimal.Zero
	if code := strings.ToUpper(strings.TrimSpace(discountCode)); code != "" {
		if bps, ok := e.cfg.DiscountRatesBps[code]; ok && bps > 0 {
			discount = subtotal.Mul(decimal.NewFromInt(bps)).Shift(-4).Round(2)
		}
	}

	// Floor at zero: rates stay <= 100% today, but the guard keeps future
	// rate changes from producing negative totals.
	afterDiscount := subtotal.Sub(discount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}

	domestic := e.cfg.Domestic(country)

	shipping := decimal.Zero
	if afterDiscount.LessThan(e.cfg.FreeShippingThreshold) {
		if domestic {
			shipping = e.cfg.DomesticShippingFee
		} else {
			shipping = e.cfg.InternationalShippingFee
		}
	}

	tax := decimal.Zero
	if domestic {
		tax = afterDiscount.Mul(decimal.NewFromInt(e.cfg.DomesticTaxRateBps)).Shift(-4).Round(2)
	}

	shipping = shipping.Round(2)
	afterDiscount = afterDiscount.Round(2)

	return Breakdown{
		Items:    items,
		Subtotal: subtotal.Round(2),
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    afterDiscount.Add(shipping).Add(tax),
	}, nil
}
