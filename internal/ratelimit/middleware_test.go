package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/slugsera/backend-shop/internal/common"
)

func newTestHandler(t *testing.T, max int, window time.Duration) http.Handler {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := Handler{
		Limiter: Limiter{Client: client, Prefix: "slugsera:rl:"},
		Config: Config{
			Key:    common.ClientIP,
			Window: window,
			Max:    max,
		},
	}
	return limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestLimiterAllowsWithinWindow(t *testing.T) {
	handler := newTestHandler(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4444"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestLimiterRejectsOverLimit(t *testing.T) {
	handler := newTestHandler(t, 2, time.Minute)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4444"
		handler.ServeHTTP(last, req)
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))
	require.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestLimiterKeysByClientIP(t *testing.T) {
	handler := newTestHandler(t, 1, time.Minute)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:4444"
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.9:5555"
	handler.ServeHTTP(other, req)
	require.Equal(t, http.StatusOK, other.Code)
}

func TestLimiterDisabledWithoutClient(t *testing.T) {
	limiter := Handler{
		Limiter: Limiter{},
		Config: Config{
			Key:    common.ClientIP,
			Window: time.Minute,
			Max:    1,
		},
	}
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
