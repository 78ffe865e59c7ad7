package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/httputil"
	"github.com/utafrali/estatehub/pkg/middleware"
)

// successResponse is the body of mutations that return no resource.
type successResponse struct {
	Success bool `json:"success"`
}

// requireCaller returns the authenticated user id, or writes a 401 and
// returns false. It runs before body decoding so anonymous callers never
// see validation errors.
func requireCaller(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	id := middleware.CallerIDFromContext(r.Context())
	if id == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), logger)
		return "", false
	}
	return id, true
}
