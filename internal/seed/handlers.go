package seed

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/slugsera/backend-shop/internal/common"
)

// Handler exposes the seeding endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type seedRequest struct {
	Force bool `json:"force"`
}

// Seed handles POST /api/seed. An empty body means force=false.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
			return
		}
	}
	result, err := h.service.Seed(r.Context(), req.Force)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "seeding failed", nil)
		return
	}
	common.JSON(w, http.StatusOK, result)
}
