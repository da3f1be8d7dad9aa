package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slugsera/backend-shop/internal/order"
)

const insertOrderSQL = `INSERT INTO orders
	(id, user_email, guest, items, address, payment_method, discount_code,
	 lines, subtotal, discount, shipping, tax, total, status, created_at)
	VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''),
	        $8, $9, $10, $11, $12, $13, $14, $15)`

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. The
// cart, address, and priced lines are stored as JSONB documents; the
// monetary summary is flattened into NUMERIC columns for reporting.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository using the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a repriced order.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encoding order items: %w", err)
	}
	address, err := json.Marshal(o.Address)
	if err != nil {
		return fmt.Errorf("encoding order address: %w", err)
	}
	lines, err := json.Marshal(o.Breakdown.Items)
	if err != nil {
		return fmt.Errorf("encoding order lines: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertOrderSQL,
		o.ID, o.UserEmail, o.Guest, items, address, o.PaymentMethod, o.DiscountCode,
		lines, o.Breakdown.Subtotal, o.Breakdown.Discount, o.Breakdown.Shipping,
		o.Breakdown.Tax, o.Breakdown.Total, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order %q: %w", o.ID, err)
	}
	return nil
}
