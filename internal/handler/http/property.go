package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/pkg/httputil"
)

// PropertyLookup fetches third-party details for a street address.
type PropertyLookup interface {
	PropertyDetails(ctx context.Context, address string) (json.RawMessage, error)
}

// PropertyHandler handles HTTP requests for listing endpoints.
type PropertyHandler struct {
	properties *service.PropertyService
	ratings    *service.RatingService
	lookup     PropertyLookup
	logger     *slog.Logger
}

// NewPropertyHandler creates a new property HTTP handler.
func NewPropertyHandler(properties *service.PropertyService, ratings *service.RatingService, lookup PropertyLookup, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		ratings:    ratings,
		lookup:     lookup,
		logger:     logger,
	}
}

// RateRequest is the JSON body for rating a property.
type RateRequest struct {
	Rating int `json:"rating"`
}

// RateResponse carries the recomputed aggregate.
type RateResponse struct {
	Success bool `json:"success"`
	domain.RatingSummary
}

// UserRatingResponse is the caller's own score, 0 when unrated.
type UserRatingResponse struct {
	Rating int `json:"rating"`
}

// LookupRequest is the JSON body for a property details lookup.
type LookupRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

// ListProperties handles GET /api/v1/properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePropertyFilter(r.URL.Query())
	if err != nil {
		httputil.WriteParamError(w, r, err.Error())
		return
	}

	props, total, err := h.properties.ListProperties(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(props, total, filter.Page, filter.PerPage))
}

// FeaturedProperties handles GET /api/v1/properties/featured
func (h *PropertyHandler) FeaturedProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.properties.FeaturedProperties(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, props)
}

// ListOwnProperties handles GET /api/v1/properties/user
func (h *PropertyHandler) ListOwnProperties(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	props, err := h.properties.ListOwnProperties(r.Context(), callerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, props)
}

// GetProperty handles GET /api/v1/properties/{id}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	detail, err := h.properties.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, detail)
}

// CreateProperty handles POST /api/v1/properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req service.CreatePropertyInput
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	p, err := h.properties.CreateProperty(r.Context(), callerID, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, p)
}

// UpdateProperty handles PUT /api/v1/properties/{id}. The body is validated
// by the service after the ownership check.
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req service.UpdatePropertyInput
	if !httputil.Decode(w, r, &req) {
		return
	}

	p, err := h.properties.UpdateProperty(r.Context(), callerID, chi.URLParam(r, "id"), &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

// DeleteProperty handles DELETE /api/v1/properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.properties.DeleteProperty(r.Context(), callerID, chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, successResponse{Success: true})
}

// RateProperty handles POST /api/v1/properties/{id}/rate
func (h *PropertyHandler) RateProperty(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req RateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	summary, err := h.ratings.RateProperty(r.Context(), callerID, chi.URLParam(r, "id"), req.Rating)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, RateResponse{Success: true, RatingSummary: summary})
}

// UserRating handles GET /api/v1/properties/{id}/user-rating
func (h *PropertyHandler) UserRating(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	rating, err := h.ratings.UserRating(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, UserRatingResponse{Rating: rating})
}

// LookupProperty handles POST /api/v1/properties/lookup. The upstream JSON
// is returned verbatim inside the data envelope.
func (h *PropertyHandler) LookupProperty(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	details, err := h.lookup.PropertyDetails(r.Context(), req.Address)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, details)
}
