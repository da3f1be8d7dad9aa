package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slugsera/backend-shop/internal/pricing"
)

// Service reprices and persists orders. Client-supplied totals are never
// trusted; every submission runs through the calculator again.
type Service struct {
	engine *pricing.Engine
	orders Repository
	now    func() time.Time
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Engine *pricing.Engine
	Orders Repository
	Now    func() time.Time
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Engine == nil {
		return nil, errors.New("order: pricing engine is required")
	}
	if cfg.Orders == nil {
		return nil, errors.New("order: repository is required")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{engine: cfg.Engine, orders: cfg.Orders, now: now}, nil
}

// Submission is a validated order request ready for pricing.
type Submission struct {
	UserEmail     string
	Guest         bool
	Items         []pricing.CartLine
	Address       Address
	PaymentMethod string
	DiscountCode  string
}

// Quote prices a cart without persisting anything.
func (s *Service) Quote(ctx context.Context, lines []pricing.CartLine, discountCode, country string) (pricing.Breakdown, error) {
	return s.engine.Quote(ctx, lines, discountCode, country)
}

// Create reprices the submission against the current catalog, assigns an
// id and status, and persists the order. COD confirms immediately since no
// payment hold is involved; everything else stays pending.
func (s *Service) Create(ctx context.Context, sub Submission) (Order, error) {
	breakdown, err := s.engine.Quote(ctx, sub.Items, sub.DiscountCode, sub.Address.Country)
	if err != nil {
		return Order{}, err
	}

	status := StatusPending
	if strings.EqualFold(strings.TrimSpace(sub.PaymentMethod), PaymentCOD) {
		status = StatusConfirmed
	}

	o := Order{
		ID:            uuid.NewString(),
		UserEmail:     strings.TrimSpace(sub.UserEmail),
		Guest:         sub.Guest,
		Items:         sub.Items,
		Address:       sub.Address,
		PaymentMethod: strings.ToUpper(strings.TrimSpace(sub.PaymentMethod)),
		DiscountCode:  strings.TrimSpace(sub.DiscountCode),
		Breakdown:     breakdown,
		Status:        status,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return Order{}, fmt.Errorf("persist order: %w", err)
	}
	return o, nil
}
