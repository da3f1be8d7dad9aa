package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/slugsera/backend-shop/internal/common"
)

type memoryUsers struct {
	byEmail map[string]User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]User)}
}

func (m *memoryUsers) Create(_ context.Context, u User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return ErrEmailTaken
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryUsers) FindByCredentials(_ context.Context, email, passwordHash string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok || u.PasswordHash != passwordHash {
		return nil, nil
	}
	return &u, nil
}

func newTestRouter(t *testing.T, store *memoryUsers) *chi.Mux {
	t.Helper()
	svc, err := NewService(ServiceConfig{Users: store})
	require.NoError(t, err)
	handler := NewHandler(HandlerConfig{Service: svc})
	r := chi.NewRouter()
	r.Post("/api/users/register", handler.Register)
	r.Post("/api/users/login", handler.Login)
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

func TestRegisterAndLogin(t *testing.T) {
	store := newMemoryUsers()
	router := newTestRouter(t, store)

	rec := postJSON(t, router, "/api/users/register", map[string]any{
		"email":    "asha@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var registered struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.UserID)
	require.Equal(t, "asha@example.com", registered.Email)

	// Name defaults to the email local part when omitted.
	require.Equal(t, "asha", store.byEmail["asha@example.com"].Name)
	// Passwords are never stored in the clear.
	require.Equal(t, common.Sha256Hex("hunter2"), store.byEmail["asha@example.com"].PasswordHash)

	rec = postJSON(t, router, "/api/users/login", map[string]any{
		"email":    "asha@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Email string `json:"email"`
		OK    bool   `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.OK)
	require.Equal(t, "asha@example.com", login.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t, newMemoryUsers())

	payload := map[string]any{"email": "asha@example.com", "password": "hunter2"}
	require.Equal(t, http.StatusOK, postJSON(t, router, "/api/users/register", payload).Code)

	rec := postJSON(t, router, "/api/users/register", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "EMAIL_TAKEN", body.Error.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t, newMemoryUsers())

	require.Equal(t, http.StatusOK, postJSON(t, router, "/api/users/register", map[string]any{
		"email":    "asha@example.com",
		"password": "hunter2",
	}).Code)

	rec := postJSON(t, router, "/api/users/login", map[string]any{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
}

func TestLoginUnknownAccount(t *testing.T) {
	router := newTestRouter(t, newMemoryUsers())

	rec := postJSON(t, router, "/api/users/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t, newMemoryUsers())

	rec := postJSON(t, router, "/api/users/register", map[string]any{
		"email":    "not-an-email",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
