package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, store *memoryOrders) *chi.Mux {
	t.Helper()
	handler := NewHandler(HandlerConfig{Service: newTestService(t, store)})
	r := chi.NewRouter()
	r.Post("/api/calc", handler.Calc)
	r.Post("/api/orders", handler.Create)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestCalcEndpoint(t *testing.T) {
	router := newTestRouter(t, &memoryOrders{})

	rec := postJSON(t, router, "/api/calc", map[string]any{
		"items":   []map[string]any{{"product_slug": "companion-hoodie-red", "qty": 1, "size": "M", "color": "red"}},
		"country": "IN",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Subtotal float64 `json:"subtotal"`
		Shipping float64 `json:"shipping"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 109.0, body.Subtotal)
	require.Equal(t, 8.0, body.Shipping)
	require.Equal(t, 5.45, body.Tax)
	require.Equal(t, 122.45, body.Total)
}

func TestCalcEndpointMissingCountryIsDomestic(t *testing.T) {
	router := newTestRouter(t, &memoryOrders{})

	rec := postJSON(t, router, "/api/calc", map[string]any{
		"items": []map[string]any{{"product_slug": "companion-hoodie-red", "qty": 1, "size": "M", "color": "red"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Shipping float64 `json:"shipping"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 8.0, body.Shipping)
	require.Equal(t, 5.45, body.Tax)
	require.Equal(t, 122.45, body.Total)
}

func TestCalcEndpointInvalidCart(t *testing.T) {
	router := newTestRouter(t, &memoryOrders{})

	rec := postJSON(t, router, "/api/calc", map[string]any{
		"items":   []map[string]any{{"product_slug": "ghost-hoodie", "qty": 1}},
		"country": "IN",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Missing []string `json:"missing"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INVALID_CART", body.Error.Code)
	require.Equal(t, []string{"ghost-hoodie"}, body.Error.Details.Missing)
}

func TestCalcEndpointEmptyCart(t *testing.T) {
	router := newTestRouter(t, &memoryOrders{})

	rec := postJSON(t, router, "/api/calc", map[string]any{"items": []map[string]any{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderEndpoint(t *testing.T) {
	store := &memoryOrders{}
	router := newTestRouter(t, store)

	rec := postJSON(t, router, "/api/orders", map[string]any{
		"guest": true,
		"items": []map[string]any{{"product_slug": "companion-hoodie-red", "qty": 1, "size": "M", "color": "red"}},
		"address": map[string]any{
			"full_name":   "Asha Rao",
			"phone":       "+91 98765 43210",
			"line1":       "12 MG Road",
			"city":        "Bengaluru",
			"state":       "KA",
			"postal_code": "560001",
			"country":     "IN",
		},
		"payment_method": "COD",
		"discount_code":  "SLUG10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
		Summary struct {
			Total float64 `json:"total"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.OrderID)
	require.Equal(t, "ok", body.Status)
	// 109 - 10.90 = 98.10, + 8 shipping + 4.91 tax.
	require.InDelta(t, 111.01, body.Summary.Total, 0.001)

	require.Len(t, store.created, 1)
	require.Equal(t, StatusConfirmed, store.created[0].Status)
}

func TestCreateOrderValidation(t *testing.T) {
	router := newTestRouter(t, &memoryOrders{})

	rec := postJSON(t, router, "/api/orders", map[string]any{
		"items":          []map[string]any{{"product_slug": "companion-hoodie-red", "qty": 1}},
		"payment_method": "BARTER",
		"address":        map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}
