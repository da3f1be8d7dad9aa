package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slugsera/backend-shop/internal/catalog"
)

const productColumns = `id, title, slug, description, price, colors, design_type, images,
	in_stock, rating, gsm, fabric, details, sizes, created_at`

const (
	listProductsSQL = `SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR $1 = ANY(colors))
		  AND ($2 = '' OR design_type = $2)
		ORDER BY slug`

	getProductBySlugSQL = `SELECT ` + productColumns + `
		FROM products WHERE slug = $1`

	getProductsBySlugsSQL = `SELECT ` + productColumns + `
		FROM products WHERE slug = ANY($1)`

	countProductsSQL = `SELECT count(*) FROM products`

	deleteProductsSQL = `DELETE FROM products`

	insertProductSQL = `INSERT INTO products
		(id, title, slug, description, price, colors, design_type, images,
		 in_stock, rating, gsm, fabric, details, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository using the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns products matching the filter, ordered by slug.
func (r *ProductRepository) List(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL, f.Color, f.DesignType)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetBySlug returns a single product by its slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductBySlugSQL, slug)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", slug, err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", slug, err)
	}
	return &p, nil
}

// FindBySlugs returns products matching any of the given slugs.
func (r *ProductRepository) FindBySlugs(ctx context.Context, slugs []string) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsBySlugsSQL, slugs)
	if err != nil {
		return nil, fmt.Errorf("getting products by slugs: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Count returns the number of products in the catalog.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, countProductsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return count, nil
}

// DeleteAll clears the catalog. Used by forced reseeds.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, deleteProductsSQL); err != nil {
		return fmt.Errorf("deleting products: %w", err)
	}
	return nil
}

// InsertBatch inserts products in a single transaction.
func (r *ProductRepository) InsertBatch(ctx context.Context, products []catalog.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert products: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range products {
		_, err := tx.Exec(ctx, insertProductSQL,
			p.ID, p.Title, p.Slug, p.Description, p.Price, p.Colors, p.DesignType,
			p.Images, p.InStock, p.Rating, p.GSM, p.Fabric, p.Details, p.Sizes,
		)
		if err != nil {
			return fmt.Errorf("inserting product %q: %w", p.Slug, err)
		}
	}
	return tx.Commit(ctx)
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Price, &p.Colors, &p.DesignType,
		&p.Images, &p.InStock, &p.Rating, &p.GSM, &p.Fabric, &p.Details, &p.Sizes,
		&p.CreatedAt,
	)
	return p, err
}
