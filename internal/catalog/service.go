package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/slugsera/backend-shop/internal/common"
)

const listCacheKeyAll = "catalog:products:list:all"

// Service orchestrates catalog queries and caching.
type Service struct {
	products Repository
	cache    *Cache
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Products Repository
	Cache    *Cache
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Products == nil {
		return nil, errors.New("catalog: product repository is required")
	}
	return &Service{products: cfg.Products, cache: cfg.Cache}, nil
}

// ParseFilter normalises raw query values into catalog filters.
func (s *Service) ParseFilter(values url.Values) Filter {
	return Filter{
		Color:      strings.ToLower(strings.TrimSpace(values.Get("color"))),
		DesignType: strings.ToLower(strings.TrimSpace(values.Get("design_type"))),
	}
}

// List returns products matching the filter. The unfiltered listing is
// served from cache when available.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	cacheable := f.Color == "" && f.DesignType == ""
	if cacheable {
		var cached []Product
		ok, err := s.cache.GetJSON(ctx, listCacheKeyAll, &cached)
		if err == nil && ok {
			return cached, nil
		}
	}
	products, err := s.products.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []Product{}
	}
	if cacheable {
		_ = s.cache.SetJSON(ctx, listCacheKeyAll, products)
	}
	return products, nil
}

// GetBySlug returns a single product or a NOT_FOUND error.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, common.NewAppError("NOT_FOUND", "product not found", http.StatusNotFound, nil)
	}
	p, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.NewAppError("NOT_FOUND", "product not found", http.StatusNotFound, err)
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

// InvalidateListing drops the cached unfiltered listing after a reseed.
func (s *Service) InvalidateListing(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, listCacheKeyAll)
}
