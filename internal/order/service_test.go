package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/slugsera/backend-shop/internal/catalog"
	"github.com/slugsera/backend-shop/internal/pricing"
)

type memoryOrders struct {
	created []Order
}

func (m *memoryOrders) Create(_ context.Context, o Order) error {
	m.created = append(m.created, o)
	return nil
}

type staticLookup map[string]catalog.Product

func (s staticLookup) FindBySlugs(_ context.Context, slugs []string) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(slugs))
	for _, slug := range slugs {
		if p, ok := s[slug]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func testPricingConfig() pricing.Config {
	return pricing.Config{
		HomeCountry:              "IN",
		HomeCountryName:          "India",
		FreeShippingThreshold:    decimal.RequireFromString("150"),
		DomesticShippingFee:      decimal.RequireFromString("8"),
		InternationalShippingFee: decimal.RequireFromString("25"),
		DomesticTaxRateBps:       500,
		DiscountRatesBps:         map[string]int64{"SLUG10": 1000, "VIP20": 2000},
	}
}

func newTestService(t *testing.T, store *memoryOrders) *Service {
	t.Helper()
	lookup := staticLookup{
		"companion-hoodie-red": {Slug: "companion-hoodie-red", Title: "Companion Hoodie", Price: decimal.RequireFromString("109")},
	}
	svc, err := NewService(ServiceConfig{
		Engine: pricing.NewEngine(lookup, testPricingConfig()),
		Orders: store,
		Now:    func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func baseSubmission() Submission {
	return Submission{
		Guest: true,
		Items: []pricing.CartLine{{ProductSlug: "companion-hoodie-red", Qty: 1, Size: "M", Color: "red"}},
		Address: Address{
			FullName:   "Asha Rao",
			Phone:      "+91 98765 43210",
			Line1:      "12 MG Road",
			City:       "Bengaluru",
			State:      "KA",
			PostalCode: "560001",
			Country:    "IN",
		},
		PaymentMethod: PaymentCOD,
	}
}

func TestCreateConfirmsCODImmediately(t *testing.T) {
	store := &memoryOrders{}
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), baseSubmission())
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, created.Status)
	require.NotEmpty(t, created.ID)
	require.Len(t, store.created, 1)
	require.Equal(t, created.ID, store.created[0].ID)
}

func TestCreateLeavesPrepaidPending(t *testing.T) {
	store := &memoryOrders{}
	svc := newTestService(t, store)

	sub := baseSubmission()
	sub.PaymentMethod = "prepaid"
	created, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)
	require.Equal(t, PaymentPrepaid, created.PaymentMethod)
}

func TestCreateRepricesServerSide(t *testing.T) {
	store := &memoryOrders{}
	svc := newTestService(t, store)

	sub := baseSubmission()
	sub.DiscountCode = "vip20"
	created, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, "99.56", created.Breakdown.Total.String())
	require.Equal(t, "21.8", created.Breakdown.Discount.String())
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	store := &memoryOrders{}
	svc := newTestService(t, store)

	sub := baseSubmission()
	sub.Items = []pricing.CartLine{{ProductSlug: "ghost-hoodie", Qty: 1}}
	_, err := svc.Create(context.Background(), sub)
	require.Error(t, err)
	require.Empty(t, store.created)
}
