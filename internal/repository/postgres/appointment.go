package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/pkg/database"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
)

// AppointmentRepository implements repository.AppointmentRepository using PostgreSQL.
type AppointmentRepository struct {
	pool database.DBTX
}

// NewAppointmentRepository creates a new PostgreSQL-backed appointment repository.
func NewAppointmentRepository(pool database.DBTX) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// Create inserts a new appointment.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (err error) {
	query := `
		INSERT INTO appointments (id, property_id, user_id, date, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, end := database.TraceQuery(ctx, "CreateAppointment", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query, a.ID, a.PropertyID, a.UserID, a.Date, a.Message, a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its ID.
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (_ *domain.Appointment, err error) {
	query := `
		SELECT id, property_id, user_id, date, message, status, created_at
		FROM appointments
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetAppointment", query)
	defer func() { end(err) }()

	var a domain.Appointment
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.PropertyID, &a.UserID, &a.Date, &a.Message, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", id)
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// UpdateStatus sets the appointment's status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) (err error) {
	query := `UPDATE appointments SET status = $1 WHERE id = $2`

	ctx, end := database.TraceQuery(ctx, "UpdateAppointmentStatus", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("appointment", id)
	}
	return nil
}

// ListByUser returns the user's appointments joined with their properties,
// soonest first.
func (r *AppointmentRepository) ListByUser(ctx context.Context, userID string) (_ []domain.AppointmentDetail, err error) {
	query := `
		SELECT a.id, a.property_id, a.user_id, a.date, a.message, a.status, a.created_at,
		       p.id, p.title, p.description, p.price, p.address, p.city, p.state, p.zip_code, p.lat, p.lng,
		       p.bedrooms, p.bathrooms, p.square_feet, p.year_built, p.property_type, p.listing_type, p.image_url,
		       p.user_id, p.featured, p.status, p.created_at
		FROM appointments a
		JOIN properties p ON p.id = a.property_id
		WHERE a.user_id = $1
		ORDER BY a.date ASC, a.id`

	ctx, end := database.TraceQuery(ctx, "ListAppointments", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appts := []domain.AppointmentDetail{}
	for rows.Next() {
		var a domain.AppointmentDetail
		dest := append([]any{&a.ID, &a.PropertyID, &a.UserID, &a.Date, &a.Message, &a.Status, &a.CreatedAt},
			propertyDest(&a.Property)...)
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appts = append(appts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointment rows: %w", err)
	}
	return appts, nil
}
