package middleware

import (
	"mime"
	"net/http"

	"github.com/utafrali/estatehub/pkg/httputil"
	"github.com/utafrali/estatehub/pkg/logger"
)

// ContentTypeJSON rejects write requests that carry a body in anything
// other than JSON with 415. Bodiless writes such as
// POST /saved-properties/{id} pass through.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasBody(r) {
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mt != "application/json" {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.ErrorResponse{
					Error:     "Content-Type must be application/json",
					Code:      "UNSUPPORTED_MEDIA_TYPE",
					RequestID: logger.CorrelationIDFromContext(r.Context()),
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return r.ContentLength != 0
	default:
		return r.ContentLength > 0
	}
}
