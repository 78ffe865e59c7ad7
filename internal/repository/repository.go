package repository

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/utafrali/estatehub/internal/domain"
)

// PropertyFilter holds the optional listing constraints. A nil field imposes
// no constraint; all non-nil fields combine with AND.
type PropertyFilter struct {
	City         *string
	MinPrice     *float64
	MaxPrice     *float64
	MinBeds      *int
	MinBaths     *float64
	PropertyType *string
	ListingType  *string
	MinSqft      *int
	MaxSqft      *int
	MinYear      *int
	MaxYear      *int
	Bounds       *orb.Bound
	Page         int
	PerPage      int
}

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	// List returns properties matching filter, newest first, with the total
	// number of matches across all pages.
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, int, error)

	// GetByID returns the property or an error wrapping apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Property, error)

	// ListFeatured returns up to limit featured properties, newest first.
	ListFeatured(ctx context.Context, limit int) ([]domain.Property, error)

	// ListByOwner returns every property owned by userID, newest first.
	ListByOwner(ctx context.Context, userID string) ([]domain.Property, error)

	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error

	// Delete removes the property and all rows that reference it in one
	// transaction.
	Delete(ctx context.Context, id string) error
}

// RatingRepository defines persistence operations for property ratings.
type RatingRepository interface {
	// Upsert inserts the rating or overwrites the caller's existing score.
	Upsert(ctx context.Context, r *domain.Rating) error

	// ListValues returns every rating value recorded for a property.
	ListValues(ctx context.Context, propertyID string) ([]int, error)

	// GetUserRating returns the user's score for a property, or 0 if none.
	GetUserRating(ctx context.Context, propertyID, userID string) (int, error)
}

// SavedPropertyRepository defines persistence for bookmarked properties.
type SavedPropertyRepository interface {
	// Save is idempotent: saving an already-saved property succeeds.
	Save(ctx context.Context, s *domain.SavedProperty) error

	// Remove is idempotent: removing a missing save succeeds.
	Remove(ctx context.Context, propertyID, userID string) error

	ListByUser(ctx context.Context, userID string) ([]domain.SavedPropertyDetail, error)
}

// AppointmentRepository defines persistence for viewing appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error

	// ListByUser returns the user's appointments, soonest first.
	ListByUser(ctx context.Context, userID string) ([]domain.AppointmentDetail, error)
}

// AgentRepository exposes the agent reference table.
type AgentRepository interface {
	List(ctx context.Context) ([]domain.Agent, error)
}

// FeaturedCache stores the featured-listing page outside the database.
type FeaturedCache interface {
	// Get returns the cached listings; ok is false on a miss.
	Get(ctx context.Context) (props []domain.Property, ok bool, err error)
	Set(ctx context.Context, props []domain.Property) error
	Invalidate(ctx context.Context) error
}
