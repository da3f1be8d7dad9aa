package policy

import (
	"net/http"

	"github.com/slugsera/backend-shop/internal/common"
)

// Handler serves the static store policies.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Policies handles GET /api/policies.
func (h *Handler) Policies(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]string{
		"terms":    "Use of this site constitutes acceptance of our Terms & Conditions.",
		"refund":   "Refunds/Returns accepted within 7 days in unworn condition.",
		"shipping": "Orders ship within 48 hours. Free shipping on qualifying orders.",
		"privacy":  "We respect your privacy. Data is used solely to fulfill orders.",
	})
}
