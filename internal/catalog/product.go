package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item. Monetary values use decimal to avoid float
// drift in downstream pricing maths.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Colors      []string        `json:"colors"`
	DesignType  string          `json:"design_type"`
	Images      []string        `json:"images"`
	InStock     bool            `json:"in_stock"`
	Rating      float64         `json:"rating"`
	GSM         int             `json:"gsm"`
	Fabric      string          `json:"fabric"`
	Details     []string        `json:"details"`
	Sizes       []string        `json:"sizes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Filter narrows a catalog listing.
type Filter struct {
	Color      string
	DesignType string
}

// Repository defines storage operations for the product catalog. The
// pricing engine and the seeder consume subsets of this interface.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, products []Product) error
}
