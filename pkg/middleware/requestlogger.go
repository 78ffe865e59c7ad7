package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/estatehub/pkg/logger"
)

// RequestLogger stores a request-scoped logger, enriched with correlation id,
// caller id and trace ids, in the request context for logger.FromContext.
//
// Mount it after RequestLogging, Tracing and Identify so those values exist.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
