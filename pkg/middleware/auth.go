package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/estatehub/pkg/httputil"
	"github.com/utafrali/estatehub/pkg/logger"
)

type contextKey string

const callerKey contextKey = "caller"

// Claims is the identity extracted from a verified bearer token.
type Claims struct {
	UserID string
	Email  string
}

// TokenVerifier checks a raw bearer token and returns its claims.
type TokenVerifier func(token string) (*Claims, error)

// Identify resolves the caller from an optional bearer token.
//
// Requests without an Authorization header continue anonymously; handlers
// decide whether an operation needs a caller. A header that is present but
// malformed, expired or badly signed is rejected with 401 so a client never
// silently falls back to anonymous access.
func Identify(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				writeUnauthorized(w, r, "invalid authorization header format")
				return
			}

			claims, err := verify(strings.TrimSpace(token))
			if err != nil || claims.UserID == "" {
				writeUnauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := WithCaller(r.Context(), claims)
			ctx = logger.WithCallerID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCaller stores verified claims in ctx.
func WithCaller(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromContext returns the verified claims, or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(callerKey).(*Claims)
	return c
}

// CallerIDFromContext returns the caller's user id, or "" when anonymous.
func CallerIDFromContext(ctx context.Context) string {
	if c := CallerFromContext(ctx); c != nil {
		return c.UserID
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="estatehub"`)
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error:     msg,
		Code:      "UNAUTHORIZED",
		RequestID: logger.CorrelationIDFromContext(r.Context()),
	})
}
