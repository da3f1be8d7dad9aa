package diag

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slugsera/backend-shop/internal/common"
)

// Handler serves the root banner and the database diagnostics endpoint.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler constructs a Handler. The pool may be nil when the database
// is unavailable; diagnostics then report the disconnected state.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]string{
		"brand":  "Slug'sEra",
		"status": "running",
	})
}

// Test handles GET /test. It pings the database and lists a sample of
// application tables so deploys can be verified end to end.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"tables":            []string{},
	}
	if h.pool == nil {
		common.JSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		resp["database"] = "error: " + err.Error()
		common.JSON(w, http.StatusOK, resp)
		return
	}
	resp["database"] = "connected"
	resp["connection_status"] = "connected"

	rows, err := h.pool.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
		LIMIT 10`)
	if err != nil {
		resp["database"] = "connected but error listing tables"
		common.JSON(w, http.StatusOK, resp)
		return
	}
	defer rows.Close()

	tables := make([]string, 0, 10)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			tables = append(tables, name)
		}
	}
	resp["tables"] = tables
	common.JSON(w, http.StatusOK, resp)
}
