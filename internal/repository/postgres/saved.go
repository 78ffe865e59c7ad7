package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/pkg/database"
)

// SavedPropertyRepository implements repository.SavedPropertyRepository
// using PostgreSQL.
type SavedPropertyRepository struct {
	pool database.DBTX
}

// NewSavedPropertyRepository creates a new PostgreSQL-backed saved-property repository.
func NewSavedPropertyRepository(pool database.DBTX) *SavedPropertyRepository {
	return &SavedPropertyRepository{pool: pool}
}

// Save bookmarks a property. Saving twice is a no-op.
func (r *SavedPropertyRepository) Save(ctx context.Context, s *domain.SavedProperty) (err error) {
	query := `
		INSERT INTO user_saved_properties (id, property_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id, user_id) DO NOTHING`

	ctx, end := database.TraceQuery(ctx, "SaveProperty", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, s.ID, s.PropertyID, s.UserID, s.CreatedAt); err != nil {
		return fmt.Errorf("insert saved property: %w", err)
	}
	return nil
}

// Remove deletes a bookmark. Removing a missing bookmark is not an error.
func (r *SavedPropertyRepository) Remove(ctx context.Context, propertyID, userID string) (err error) {
	query := `DELETE FROM user_saved_properties WHERE property_id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "RemoveSavedProperty", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, propertyID, userID); err != nil {
		return fmt.Errorf("delete saved property: %w", err)
	}
	return nil
}

// ListByUser returns the user's bookmarks joined with their properties,
// most recently saved first.
func (r *SavedPropertyRepository) ListByUser(ctx context.Context, userID string) (_ []domain.SavedPropertyDetail, err error) {
	query := `
		SELECT s.id, s.property_id, s.user_id, s.created_at,
		       p.id, p.title, p.description, p.price, p.address, p.city, p.state, p.zip_code, p.lat, p.lng,
		       p.bedrooms, p.bathrooms, p.square_feet, p.year_built, p.property_type, p.listing_type, p.image_url,
		       p.user_id, p.featured, p.status, p.created_at
		FROM user_saved_properties s
		JOIN properties p ON p.id = s.property_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, s.id`

	ctx, end := database.TraceQuery(ctx, "ListSavedProperties", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved properties: %w", err)
	}
	defer rows.Close()

	saved := []domain.SavedPropertyDetail{}
	for rows.Next() {
		var s domain.SavedPropertyDetail
		dest := append([]any{&s.ID, &s.PropertyID, &s.UserID, &s.CreatedAt}, propertyDest(&s.Property)...)
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan saved property row: %w", err)
		}
		saved = append(saved, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved property rows: %w", err)
	}
	return saved, nil
}
