package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/pkg/httputil"
)

// AppointmentHandler handles HTTP requests for viewing appointments.
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment HTTP handler.
func NewAppointmentHandler(svc *service.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{service: svc, logger: logger}
}

// UpdateAppointmentRequest is the body of PATCH /api/v1/appointments/{id}.
type UpdateAppointmentRequest struct {
	Status string `json:"status"`
}

// ListAppointments handles GET /api/v1/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	appts, err := h.service.ListAppointments(r.Context(), callerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, appts)
}

// CreateAppointment handles POST /api/v1/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req service.CreateAppointmentInput
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.CreateAppointment(r.Context(), callerID, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, a)
}

// UpdateAppointment handles PATCH /api/v1/appointments/{id}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := requireCaller(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	a, err := h.service.UpdateAppointmentStatus(r.Context(), callerID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, a)
}
