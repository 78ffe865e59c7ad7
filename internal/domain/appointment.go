package domain

import (
	"errors"
	"time"
)

// Appointment status constants.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

// ErrInvalidTransition is returned when an appointment cannot move to the
// requested status.
var ErrInvalidTransition = errors.New("invalid appointment status transition")

// Appointment is a viewing request made by a user for a property.
type Appointment struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	Date       time.Time `json:"date"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AppointmentDetail is an appointment joined with its property.
type AppointmentDetail struct {
	Appointment
	Property Property `json:"property"`
}

var appointmentTransitions = map[string][]string{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCancelled},
	AppointmentStatusCancelled: {},
}

// IsValidAppointmentStatus checks whether s is a known appointment status.
func IsValidAppointmentStatus(s string) bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// CanTransition reports whether an appointment in status from may move to
// status to.
func CanTransition(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancel moves the appointment to cancelled. It returns false when the
// appointment was already cancelled, in which case nothing changes.
func (a *Appointment) Cancel() (bool, error) {
	if a.Status == AppointmentStatusCancelled {
		return false, nil
	}
	if !CanTransition(a.Status, AppointmentStatusCancelled) {
		return false, ErrInvalidTransition
	}
	a.Status = AppointmentStatusCancelled
	return true, nil
}
