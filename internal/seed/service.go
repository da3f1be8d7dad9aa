package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slugsera/backend-shop/internal/catalog"
)

// Catalog is the subset of catalog storage the seeder needs.
type Catalog interface {
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, products []catalog.Product) error
}

// Result reports what a seed run did.
type Result struct {
	Seeded   bool     `json:"seeded"`
	Inserted []string `json:"inserted,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Service loads the demo catalog. Without force it is a no-op when
// products already exist; with force it replaces the whole catalog.
type Service struct {
	products Catalog
	afterRun func(ctx context.Context)
}

// ServiceConfig groups Service dependencies. AfterRun fires after a
// successful reseed, used to drop stale listing caches.
type ServiceConfig struct {
	Products Catalog
	AfterRun func(ctx context.Context)
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Products == nil {
		return nil, errors.New("seed: catalog storage is required")
	}
	return &Service{products: cfg.Products, afterRun: cfg.AfterRun}, nil
}

// Seed loads the demo products.
func (s *Service) Seed(ctx context.Context, force bool) (Result, error) {
	count, err := s.products.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("count products: %w", err)
	}
	if count > 0 && !force {
		return Result{Seeded: false, Message: "Products already exist"}, nil
	}
	if force {
		if err := s.products.DeleteAll(ctx); err != nil {
			return Result{}, fmt.Errorf("clear products: %w", err)
		}
	}

	products := DemoProducts()
	if err := s.products.InsertBatch(ctx, products); err != nil {
		return Result{}, fmt.Errorf("insert products: %w", err)
	}
	if s.afterRun != nil {
		s.afterRun(ctx)
	}

	inserted := make([]string, len(products))
	for i, p := range products {
		inserted[i] = p.ID
	}
	return Result{Seeded: true, Inserted: inserted}, nil
}

// DemoProducts returns the launch catalog: the four Companion Hoodie colourways.
func DemoProducts() []catalog.Product {
	baseDetails := []string{
		"420 GSM heavy-weight",
		"Premium cotton fleece",
		"Embroidered + patchwork details",
		"Pre-shrunk, soft-brushed interior",
	}
	price := decimal.RequireFromString("109.00")

	type entry struct {
		title       string
		slug        string
		description string
		color       string
		designType  string
	}
	entries := []entry{
		{
			title:       "Slug'sEra Companion Hoodie – Red",
			slug:        "companion-hoodie-red",
			description: "Signature 420 GSM heavy-weight hoodie with raised embroidery and patchwork.",
			color:       "red",
			designType:  "embroidery",
		},
		{
			title:       "Slug'sEra Companion Hoodie – Off-White",
			slug:        "companion-hoodie-off-white",
			description: "Premium off-white with tonal embroidery and textured patchwork.",
			color:       "off-white",
			designType:  "embroidery",
		},
		{
			title:       "Slug'sEra Companion Hoodie – Black",
			slug:        "companion-hoodie-black",
			description: "Matte black, deep-ink graphic and stitched emblem.",
			color:       "black",
			designType:  "graphic",
		},
		{
			title:       "Slug'sEra Companion Hoodie – Coffee Brown",
			slug:        "companion-hoodie-coffee-brown",
			description: "Warm coffee brown with chenille patchwork and embroidery mix.",
			color:       "coffee-brown",
			designType:  "embroidery",
		},
	}

	out := make([]catalog.Product, len(entries))
	for i, e := range entries {
		out[i] = catalog.Product{
			ID:          uuid.NewString(),
			Title:       e.title,
			Slug:        e.slug,
			Description: e.description,
			Price:       price,
			Colors:      []string{e.color},
			DesignType:  e.designType,
			Images:      demoImages(e.color),
			InStock:     true,
			Rating:      4.8,
			GSM:         420,
			Fabric:      "Cotton Fleece",
			Details:     baseDetails,
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		}
	}
	return out
}

func demoImages(color string) []string {
	base := "https://images.placeholder.slugsera.com/" + color
	return []string{
		base + "-front.jpg",
		base + "-back.jpg",
		base + "-embroidery.jpg",
		base + "-patchwork.jpg",
	}
}
