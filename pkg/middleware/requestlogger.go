package middleware

import (
	"log/slog"
	"net/http"

	"github.com/greatochuko/fobeworkLMS/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// correlation_id, user_id, trace_id, and span_id. Handlers fetch it with
// logger.FromContext.
//
// Mount after RequestLogging (correlation ID) and Tracing (span context) so
// both are available for enrichment.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if logger.UserIDFromContext(ctx) == "" {
				if headerID := r.Header.Get("X-User-ID"); headerID != "" {
					ctx = logger.WithUserID(ctx, headerID)
				}
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
