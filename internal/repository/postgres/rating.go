package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/pkg/database"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert inserts a rating, overwriting the score if the user already rated
// the property.
func (r *RatingRepository) Upsert(ctx context.Context, rt *domain.Rating) (err error) {
	query := `
		INSERT INTO property_ratings (id, property_id, user_id, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (property_id, user_id) DO UPDATE SET rating = EXCLUDED.rating`

	ctx, end := database.TraceQuery(ctx, "UpsertRating", query)
	defer func() { end(err) }()

	if _, err = r.pool.Exec(ctx, query, rt.ID, rt.PropertyID, rt.UserID, rt.Rating, rt.CreatedAt); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// ListValues returns all rating values for a property.
func (r *RatingRepository) ListValues(ctx context.Context, propertyID string) (_ []int, err error) {
	query := `SELECT rating FROM property_ratings WHERE property_id = $1`

	ctx, end := database.TraceQuery(ctx, "ListRatings", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	values := []int{}
	for rows.Next() {
		var v int
		if err = rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		values = append(values, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}
	return values, nil
}

// GetUserRating returns the user's rating for the property, or 0 when the
// user has not rated it.
func (r *RatingRepository) GetUserRating(ctx context.Context, propertyID, userID string) (_ int, err error) {
	query := `SELECT rating FROM property_ratings WHERE property_id = $1 AND user_id = $2`

	ctx, end := database.TraceQuery(ctx, "GetUserRating", query)
	defer func() { end(err) }()

	var v int
	err = r.pool.QueryRow(ctx, query, propertyID, userID).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get user rating: %w", err)
	}
	return v, nil
}
