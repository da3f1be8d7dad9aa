package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/slugsera/backend-shop/internal/common"
)

// Handler exposes registration and login endpoints.
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

type authRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// Register handles POST /api/users/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	created, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"user_id": created.ID,
		"email":   created.Email,
	})
}

// Login handles POST /api/users/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, err)
		return
	}
	found, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"email": found.Email,
		"ok":    true,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
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
