package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/greatochuko/fobeworkLMS/internal/auth"
	"github.com/greatochuko/fobeworkLMS/internal/domain"
	"github.com/greatochuko/fobeworkLMS/pkg/httputil"
	"github.com/greatochuko/fobeworkLMS/pkg/logger"
)

type contextKeyType string

const sessionUserKey contextKeyType = "session_user"

// UserLoader resolves a user ID decoded from a session token to the current
// user record.
type UserLoader interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

// SessionAuth validates the session cookie and injects the authenticated user
// into the request context. Requests without a valid session are rejected with
// 401 before the handler runs. The middleware never refreshes or re-signs the
// token.
func SessionAuth(sessions *auth.SessionManager, users UserLoader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				writeAuthError(w, "authentication required")
				return
			}

			userID, err := sessions.Verify(cookie.Value)
			if err != nil {
				// The rejection reason stays server-side; the client only
				// sees a generic 401.
				log.DebugContext(r.Context(), "session token rejected",
					slog.String("reason", auth.VerifyReason(err)),
				)
				writeAuthError(w, "invalid or expired session")
				return
			}

			user, err := users.GetProfile(r.Context(), userID)
			if err != nil {
				log.DebugContext(r.Context(), "session user not found",
					slog.String("user_id", userID),
				)
				writeAuthError(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			ctx = logger.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
// Returns nil when the request did not pass through SessionAuth.
func UserFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(sessionUserKey).(*domain.User); ok {
		return user
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: message},
	})
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string
	Environment    string
}

// CORS returns a middleware that sets Cross-Origin Resource Sharing headers.
// Because authentication rides on a cookie, credentials are always allowed and
// the origin is echoed back rather than wildcarded. In development any origin
// is accepted; otherwise the request Origin is validated against the list.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowAny := cfg.Environment == "development"
	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAny = true
		}
		originSet[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" {
				_, listed := originSet[origin]
				if allowAny || listed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Correlation-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
