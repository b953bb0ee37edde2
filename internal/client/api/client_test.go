package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatochuko/fobeworkLMS/internal/domain"
	apperrors "github.com/greatochuko/fobeworkLMS/pkg/errors"
)

const cookieName = "learnex_session"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeUser(w http.ResponseWriter, status int, u *domain.User) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": u})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// newSessionServer emulates the auth API: login sets the session cookie,
// session requires it, logout expires it.
func newSessionServer(t *testing.T, user *domain.User) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "SecurePass123" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "token-123", Path: "/api", HttpOnly: true})
		writeUser(w, http.StatusOK, user)
	})
	mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "token-123", Path: "/api", HttpOnly: true})
		writeUser(w, http.StatusCreated, user)
	})
	mux.HandleFunc("GET /api/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookieName); err != nil || c.Value != "token-123" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		writeUser(w, http.StatusOK, user)
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/api", MaxAge: -1})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"message": "logged out"}})
	})
	mux.HandleFunc("PATCH /api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookieName); err != nil || c.Value != "token-123" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		var req UpdateProfileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		updated := *user
		if req.FirstName != nil {
			updated.FirstName = *req.FirstName
		}
		writeUser(w, http.StatusOK, &updated)
	})

	return httptest.NewServer(mux)
}

func serverUser() *domain.User {
	return &domain.User{
		ID:        "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestClient_LoginStoresCookieForLaterCalls(t *testing.T) {
	srv := newSessionServer(t, serverUser())
	defer srv.Close()

	client, err := New(srv.URL, testLogger())
	require.NoError(t, err)

	// Without a cookie the session probe is rejected.
	_, err = client.Session(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	user, err := client.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "SecurePass123"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	// The jar now carries the session cookie.
	user, err = client.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.FirstName)
}

func TestClient_LoginFailureMapsToUnauthorized(t *testing.T) {
	srv := newSessionServer(t, serverUser())
	defer srv.Close()

	client, err := New(srv.URL, testLogger())
	require.NoError(t, err)

	_, err = client.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestClient_LogoutEvictsCookie(t *testing.T) {
	srv := newSessionServer(t, serverUser())
	defer srv.Close()

	client, err := New(srv.URL, testLogger())
	require.NoError(t, err)

	_, err = client.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "SecurePass123"})
	require.NoError(t, err)

	require.NoError(t, client.Logout(context.Background()))

	_, err = client.Session(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestClient_RegisterAuthenticates(t *testing.T) {
	srv := newSessionServer(t, serverUser())
	defer srv.Close()

	client, err := New(srv.URL, testLogger())
	require.NoError(t, err)

	user, err := client.Register(context.Background(), RegisterRequest{
		Email:     "jane@example.com",
		Password:  "SecurePass123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.FullName())

	_, err = client.Session(context.Background())
	assert.NoError(t, err)
}

func TestClient_UpdateProfileSendsCookieAndDecodesUser(t *testing.T) {
	srv := newSessionServer(t, serverUser())
	defer srv.Close()

	client, err := New(srv.URL, testLogger())
	require.NoError(t, err)

	_, err = client.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "SecurePass123"})
	require.NoError(t, err)

	firstName := "Janet"
	user, err := client.UpdateProfile(context.Background(), UpdateProfileRequest{FirstName: &firstName})
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.FirstName)
}
