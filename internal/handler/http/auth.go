package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/greatochuko/fobeworkLMS/internal/service"
	"github.com/greatochuko/fobeworkLMS/pkg/httputil"
	"github.com/greatochuko/fobeworkLMS/pkg/validator"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "learnex_session"

// sessionCookiePath scopes the cookie to the API so it is not sent with
// static asset requests.
const sessionCookiePath = "/api"

// AuthHandler handles HTTP requests for session endpoints.
type AuthHandler struct {
	service   *service.UserService
	cookieTTL time.Duration
	secure    bool
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler. The cookie lifetime tracks
// the token TTL so the browser drops the cookie when the token inside it is
// already dead. secure controls the cookie Secure attribute.
func NewAuthHandler(svc *service.UserService, cookieTTL time.Duration, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, cookieTTL: cookieTTL, secure: secure, logger: logger}
}

// --- Request DTOs ---

// RegisterRequest is the JSON request body for user registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
}

// LoginRequest is the JSON request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Handlers ---

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	user, token, err := h.service.Register(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: user})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	user, token, err := h.service.Login(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// Session handles GET /api/v1/auth/session. It runs behind SessionAuth, so a
// request that reaches it always carries an authenticated user.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeAuthError(w, "authentication required")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// Logout handles POST /api/v1/auth/logout. It clears the session cookie
// unconditionally, so logging out without a session still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "logged out"},
	})
}

// --- Cookie helpers ---

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     sessionCookiePath,
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     sessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
