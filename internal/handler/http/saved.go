package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/pkg/httputil"
)

// SavedPropertyHandler handles HTTP requests for bookmarked listings.
type SavedPropertyHandler struct {
	service *service.SavedPropertyService
	logger  *slog.Logger
}

// NewSavedPropertyHandler creates a new saved-property HTTP handler.
func NewSavedPropertyHandler(svc *service.SavedPropertyService, logger *slog.Logger) *SavedPropertyHandler {
	return &SavedPropertyHandler{service: svc, logger: logger}
}

// SaveRequest is the body form of POST /api/v1/saved-properties.
type SaveRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
}

// ListSaved handles GET /api/v1/saved-properties
func (h *SavedPropertyHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	saved, err := h.service.ListSaved(r.Context(), callerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, saved)
}

// Save handles POST /api/v1/saved-properties/{id}
func (h *SavedPropertyHandler) Save(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}
	h.save(w, r, callerID, chi.URLParam(r, "id"))
}

// SaveFromBody handles POST /api/v1/saved-properties
func (h *SavedPropertyHandler) SaveFromBody(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req SaveRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	h.save(w, r, callerID, req.PropertyID)
}

func (h *SavedPropertyHandler) save(w http.ResponseWriter, r *http.Request, callerID, propertyID string) {
	if err := h.service.SaveProperty(r.Context(), callerID, propertyID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, successResponse{Success: true})
}

// Unsave handles DELETE /api/v1/saved-properties/{id}
func (h *SavedPropertyHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.UnsaveProperty(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, successResponse{Success: true})
}
