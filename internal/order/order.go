package order

import (
	"context"
	"time"

	"github.com/slugsera/backend-shop/internal/pricing"
)

// Order statuses. COD orders skip the payment hold and confirm immediately.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Payment methods accepted at submission.
const (
	PaymentCOD     = "COD"
	PaymentPrepaid = "PREPAID"
)

// Address is the shipping destination captured with an order.
type Address struct {
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// Order is a persisted, fully repriced order.
type Order struct {
	ID            string             `json:"id"`
	UserEmail     string             `json:"user_email,omitempty"`
	Guest         bool               `json:"guest"`
	Items         []pricing.CartLine `json:"items"`
	Address       Address            `json:"address"`
	PaymentMethod string             `json:"payment_method"`
	DiscountCode  string             `json:"discount_code,omitempty"`
	Breakdown     pricing.Breakdown  `json:"breakdown"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
}
