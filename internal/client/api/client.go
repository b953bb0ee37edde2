// Package api is the HTTP client for the Learnex session API. The session
// cookie set by login/register lives in an in-memory cookie jar, so callers
// never handle tokens directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/greatochuko/fobeworkLMS/internal/domain"
	"github.com/greatochuko/fobeworkLMS/pkg/httpclient"
)

// Client talks to the Learnex API over a retrying, circuit-broken transport.
type Client struct {
	baseURL string
	http    *httpclient.CircuitBreakerClient
}

// New creates an API client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	cfg := httpclient.DefaultConfig()
	cfg.Jar = jar

	inner := httpclient.New(cfg)
	cb := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig("learnex-api"), logger)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    cb,
	}, nil
}

// --- Request DTOs ---

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the profile update payload. Nil fields are omitted
// and left unchanged server-side.
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

type userEnvelope struct {
	Data *domain.User `json:"data"`
}

// --- Operations ---

// Register creates an account. On success the session cookie is stored in the
// jar and the new user is returned.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	return c.postUser(ctx, "/api/v1/auth/register", req)
}

// Login authenticates. On success the session cookie is stored in the jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	return c.postUser(ctx, "/api/v1/auth/login", req)
}

// Session returns the user attached to the current session cookie.
func (c *Client) Session(ctx context.Context) (*domain.User, error) {
	resp, err := c.http.Get(ctx, c.baseURL+"/api/v1/auth/session")
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeUser(resp)
}

// Logout tears the session down server-side. The expired cookie the server
// sends back evicts the session cookie from the jar.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.http.Post(ctx, c.baseURL+"/api/v1/auth/logout", "application/json", nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp)
	}
	_ = resp.Body.Close()
	return nil
}

// UpdateProfile patches the authenticated user's profile and returns the
// updated user.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/v1/users/me", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create PATCH request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return decodeUser(resp)
}

// --- Helpers ---

func (c *Client) postUser(ctx context.Context, path string, payload any) (*domain.User, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	return decodeUser(resp)
}

func decodeUser(resp *http.Response) (*domain.User, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp)
	}
	defer func() { _ = resp.Body.Close() }()

	var env userEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("response missing user data")
	}
	return env.Data, nil
}
