package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/slugsera/backend-shop/internal/common"
	"github.com/slugsera/backend-shop/internal/pricing"
)

// Handler exposes the calculator and order submission endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		service:  cfg.Service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type calcRequest struct {
	Items        []pricing.CartLine `json:"items" validate:"required,min=1,dive"`
	DiscountCode string             `json:"discount_code"`
	Country      string             `json:"country"`
	State        string             `json:"state"`
	PostalCode   string             `json:"postal_code"`
}

type createOrderRequest struct {
	UserEmail     string             `json:"user_email" validate:"omitempty,email"`
	Guest         bool               `json:"guest"`
	Items         []pricing.CartLine `json:"items" validate:"required,min=1,dive"`
	Address       Address            `json:"address" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=COD PREPAID"`
	DiscountCode  string             `json:"discount_code"`
}

// breakdownJSON renders monetary fields as plain JSON numbers.
type breakdownJSON struct {
	Items    []lineItemJSON `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Discount float64        `json:"discount"`
	Shipping float64        `json:"shipping"`
	Tax      float64        `json:"tax"`
	Total    float64        `json:"total"`
}

type lineItemJSON struct {
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"line_total"`
}

func toBreakdownJSON(b pricing.Breakdown) breakdownJSON {
	items := make([]lineItemJSON, len(b.Items))
	for i, item := range b.Items {
		items[i] = lineItemJSON{
			Slug:      item.Slug,
			Title:     item.Title,
			Price:     item.UnitPrice.InexactFloat64(),
			Qty:       item.Qty,
			LineTotal: item.LineTotal.InexactFloat64(),
		}
	}
	return breakdownJSON{
		Items:    items,
		Subtotal: b.Subtotal.InexactFloat64(),
		Discount: b.Discount.InexactFloat64(),
		Shipping: b.Shipping.InexactFloat64(),
		Tax:      b.Tax.InexactFloat64(),
		Total:    b.Total.InexactFloat64(),
	}
}

// Calc handles POST /api/calc.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	breakdown, err := h.service.Quote(r.Context(), req.Items, req.DiscountCode, req.Country)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, toBreakdownJSON(breakdown))
}

// Create handles POST /api/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), Submission{
		UserEmail:     req.UserEmail,
		Guest:         req.Guest,
		Items:         req.Items,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		DiscountCode:  req.DiscountCode,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"order_id": created.ID,
		"status":   "ok",
		"summary":  toBreakdownJSON(created.Breakdown),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var invalidCart *pricing.InvalidCartError
	if errors.As(err, &invalidCart) {
		common.JSONError(w, http.StatusBadRequest, "INVALID_CART", "invalid product in cart", map[string]any{
			"missing": invalidCart.Missing,
		})
		return
	}
	var invalidQty *pricing.InvalidQuantityError
	if errors.As(err, &invalidQty) {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", invalidQty.Error(), nil)
		return
	}
	if errors.Is(err, pricing.ErrEmptyCart) {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "cart has no items", nil)
		return
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Namespace())
		}
		common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request validation failed", map[string]any{
			"fields": fields,
		})
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		common.JSONError(w, status, appErr.Code, appErr.Message, appErr.Details)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
