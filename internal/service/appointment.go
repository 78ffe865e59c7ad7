package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/event"
	"github.com/utafrali/estatehub/internal/repository"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/validator"
)

// AppointmentService manages viewing appointments.
type AppointmentService struct {
	props    repository.PropertyRepository
	appts    repository.AppointmentRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(props repository.PropertyRepository, appts repository.AppointmentRepository, producer *event.Producer, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{props: props, appts: appts, producer: producer, logger: logger}
}

// CreateAppointmentInput holds the fields for scheduling a viewing.
type CreateAppointmentInput struct {
	PropertyID string    `json:"property_id" validate:"required,uuid"`
	Date       time.Time `json:"date" validate:"required"`
	Message    string    `json:"message,omitempty" validate:"max=2000"`
}

// ListAppointments returns the caller's appointments, soonest first.
func (s *AppointmentService) ListAppointments(ctx context.Context, callerID string) ([]domain.AppointmentDetail, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	appts, err := s.appts.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// CreateAppointment schedules a pending viewing of an existing property.
func (s *AppointmentService) CreateAppointment(ctx context.Context, callerID string, input *CreateAppointmentInput) (*domain.Appointment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if _, err := s.props.GetByID(ctx, input.PropertyID); err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	a := &domain.Appointment{
		ID:         uuid.New().String(),
		PropertyID: input.PropertyID,
		UserID:     callerID,
		Date:       input.Date.UTC(),
		Message:    input.Message,
		Status:     domain.AppointmentStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.appts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	if err := s.producer.PublishAppointmentCreated(ctx, a); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish appointment.created event",
			slog.String("appointment_id", a.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "appointment created",
		slog.String("appointment_id", a.ID),
		slog.String("property_id", a.PropertyID),
	)
	return a, nil
}

// UpdateAppointmentStatus applies a status change requested by the
// appointment's owner. Only cancellation is accepted; cancelling an already
// cancelled appointment succeeds without a write.
func (s *AppointmentService) UpdateAppointmentStatus(ctx context.Context, callerID, id, status string) (*domain.Appointment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := checkID("appointment", id); err != nil {
		return nil, err
	}

	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if a.UserID != callerID {
		return nil, apperrors.Forbidden("you do not own this appointment")
	}
	switch {
	case !domain.IsValidAppointmentStatus(status):
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown appointment status %q", status))
	case status != domain.AppointmentStatusCancelled:
		return nil, apperrors.InvalidInput(fmt.Sprintf("status can only be set to %q", domain.AppointmentStatusCancelled))
	}

	// Every known status may be cancelled, so a failure here means the
	// stored row carries a status this service does not recognise.
	changed, err := a.Cancel()
	if err != nil {
		return nil, fmt.Errorf("cancel appointment %s in status %q: %w", a.ID, a.Status, err)
	}
	if !changed {
		return a, nil
	}

	if err := s.appts.UpdateStatus(ctx, a.ID, a.Status); err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	if err := s.producer.PublishAppointmentCancelled(ctx, a); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish appointment.cancelled event",
			slog.String("appointment_id", a.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "appointment cancelled", slog.String("appointment_id", a.ID))
	return a, nil
}
