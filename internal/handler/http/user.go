package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/greatochuko/fobeworkLMS/internal/service"
	"github.com/greatochuko/fobeworkLMS/pkg/httputil"
	"github.com/greatochuko/fobeworkLMS/pkg/validator"
)

// UserHandler handles HTTP requests for user profile endpoints.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// UpdateProfileRequest is the JSON request body for updating user profile.
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url,max=500"`
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeAuthError(w, "authentication required")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// UpdateProfile handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeAuthError(w, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpdateProfileRequest
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

	input := service.UpdateProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
	}

	updated, err := h.service.UpdateProfile(r.Context(), user.ID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}
