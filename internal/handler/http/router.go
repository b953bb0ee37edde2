package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greatochuko/fobeworkLMS/internal/auth"
	"github.com/greatochuko/fobeworkLMS/internal/service"
	"github.com/greatochuko/fobeworkLMS/pkg/health"
	"github.com/greatochuko/fobeworkLMS/pkg/middleware"
)

// RouterConfig holds the dependencies and settings for the HTTP router.
type RouterConfig struct {
	Service       *service.UserService
	Sessions      *auth.SessionManager
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          CORSConfig
	SecureCookies bool
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.Tracing("learnex"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("learnex"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(cfg.Service, cfg.Sessions.TTL(), cfg.SecureCookies, cfg.Logger)
	sessionAuth := SessionAuth(cfg.Sessions, cfg.Service, cfg.Logger)

	// Session endpoints (public)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/register", authHandler.Register)
		r.With(ContentTypeJSON).Post("/login", authHandler.Login)

		// Logout takes no body and clears the cookie whether or not a valid
		// session exists.
		r.Post("/logout", authHandler.Logout)

		r.With(sessionAuth).Get("/session", authHandler.Session)
	})

	// User profile endpoints (auth required)
	userHandler := NewUserHandler(cfg.Service, cfg.Logger)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(sessionAuth)

		r.Get("/me", userHandler.GetProfile)
		r.Patch("/me", userHandler.UpdateProfile)
	})

	return r
}
