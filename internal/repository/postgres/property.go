package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
	"github.com/utafrali/estatehub/pkg/database"
	apperrors "github.com/utafrali/estatehub/pkg/errors"
	"github.com/utafrali/estatehub/pkg/pagination"
)

const propertyColumns = `id, title, description, price, address, city, state, zip_code, lat, lng,
		bedrooms, bathrooms, square_feet, year_built, property_type, listing_type, image_url,
		user_id, featured, status, created_at`

// PropertyRepository implements repository.PropertyRepository using PostgreSQL.
type PropertyRepository struct {
	pool database.DBTX
}

// NewPropertyRepository creates a new PostgreSQL-backed property repository.
func NewPropertyRepository(pool database.DBTX) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

// likeEscaper escapes ILIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildPropertyConditions turns a filter into a WHERE clause and its
// positional arguments. The returned index is the next free placeholder.
func buildPropertyConditions(filter repository.PropertyFilter) (string, []any, int) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	add := func(format string, values ...any) {
		placeholders := make([]any, len(values))
		for i := range values {
			placeholders[i] = argIndex
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf(format, placeholders...))
		args = append(args, values...)
	}

	if filter.City != nil {
		add(`city ILIKE $%d ESCAPE '\'`, "%"+likeEscaper.Replace(*filter.City)+"%")
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.MinBeds != nil {
		add("bedrooms >= $%d", *filter.MinBeds)
	}
	if filter.MinBaths != nil {
		add("bathrooms >= $%d", *filter.MinBaths)
	}
	if filter.PropertyType != nil {
		add("property_type = $%d", *filter.PropertyType)
	}
	if filter.ListingType != nil {
		add("listing_type = $%d", *filter.ListingType)
	}
	if filter.MinSqft != nil {
		add("square_feet >= $%d", *filter.MinSqft)
	}
	if filter.MaxSqft != nil {
		add("square_feet <= $%d", *filter.MaxSqft)
	}
	if filter.MinYear != nil {
		add("year_built >= $%d", *filter.MinYear)
	}
	if filter.MaxYear != nil {
		add("year_built <= $%d", *filter.MaxYear)
	}
	if b := filter.Bounds; b != nil {
		add("lng BETWEEN $%d AND $%d AND lat BETWEEN $%d AND $%d",
			b.Min.Lon(), b.Max.Lon(), b.Min.Lat(), b.Max.Lat())
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args, argIndex
}

// List returns properties matching the filter with the total count.
func (r *PropertyRepository) List(ctx context.Context, filter repository.PropertyFilter) (_ []domain.Property, _ int, err error) {
	where, args, argIndex := buildPropertyConditions(filter)

	// count(*) OVER() returns the total in the same round trip.
	query := fmt.Sprintf(`
		SELECT %s,
		       count(*) OVER() AS total_count
		FROM properties
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`,
		propertyColumns, where, argIndex, argIndex+1,
	)

	page := pagination.Params{Page: filter.Page, PerPage: filter.PerPage}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.PerPage <= 0 {
		page.PerPage = pagination.DefaultPerPage
	}
	args = append(args, page.PerPage, page.Offset())

	ctx, end := database.TraceQuery(ctx, "ListProperties", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var (
		props      []domain.Property
		totalCount int
	)
	for rows.Next() {
		var p domain.Property
		dest := append(propertyDest(&p), &totalCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, fmt.Errorf("scan property row: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate property rows: %w", err)
	}

	if props == nil {
		props = []domain.Property{}
	}

	// A page past the end carries no window count.
	if len(props) == 0 && page.Page > 1 {
		if totalCount, err = r.count(ctx, where, args[:argIndex-1]); err != nil {
			return nil, 0, err
		}
	}
	return props, totalCount, nil
}

func (r *PropertyRepository) count(ctx context.Context, where string, args []any) (int, error) {
	query := `SELECT count(*) FROM properties ` + where

	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// GetByID retrieves a property by its ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (_ *domain.Property, err error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetProperty", query)
	defer func() { end(err) }()

	var p domain.Property
	if err = r.pool.QueryRow(ctx, query, id).Scan(propertyDest(&p)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("property", id)
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// ListFeatured returns the newest featured properties.
func (r *PropertyRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE featured
		ORDER BY created_at DESC, id
		LIMIT $1`

	return r.queryProperties(ctx, "ListFeaturedProperties", query, limit)
}

// ListByOwner returns the properties created by userID.
func (r *PropertyRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at DESC, id`

	return r.queryProperties(ctx, "ListOwnerProperties", query, userID)
}

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (err error) {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	ctx, end := database.TraceQuery(ctx, "CreateProperty", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.Address, p.City, p.State, p.ZipCode,
		p.Lat, p.Lng, p.Bedrooms, p.Bathrooms, p.SquareFeet, p.YearBuilt,
		p.PropertyType, p.ListingType, p.ImageURL, p.UserID, p.Featured, p.Status, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// Update writes the mutable columns of p. Owner, id and created_at are never
// written.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) (err error) {
	query := `
		UPDATE properties
		SET title = $1, description = $2, price = $3, address = $4, city = $5, state = $6,
		    zip_code = $7, lat = $8, lng = $9, bedrooms = $10, bathrooms = $11, square_feet = $12,
		    year_built = $13, property_type = $14, listing_type = $15, image_url = $16, status = $17
		WHERE id = $18`

	ctx, end := database.TraceQuery(ctx, "UpdateProperty", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query,
		p.Title, p.Description, p.Price, p.Address, p.City, p.State,
		p.ZipCode, p.Lat, p.Lng, p.Bedrooms, p.Bathrooms, p.SquareFeet,
		p.YearBuilt, p.PropertyType, p.ListingType, p.ImageURL, p.Status,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("property", p.ID)
	}
	return nil
}

// Delete removes a property together with its appointments, ratings and
// saved rows atomically.
func (r *PropertyRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := database.TraceQuery(ctx, "DeleteProperty", "DELETE FROM properties WHERE id = $1")
	defer func() { end(err) }()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, dep := range []string{"appointments", "property_ratings", "user_saved_properties"} {
		if _, err = tx.Exec(ctx, `DELETE FROM `+dep+` WHERE property_id = $1`, id); err != nil {
			return fmt.Errorf("delete %s: %w", dep, err)
		}
	}

	ct, err := tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if ct.RowsAffected() == 0 {
		err = apperrors.NotFound("property", id)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PropertyRepository) queryProperties(ctx context.Context, op, query string, args ...any) (_ []domain.Property, err error) {
	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	props := []domain.Property{}
	for rows.Next() {
		var p domain.Property
		if err = rows.Scan(propertyDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		props = append(props, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate property rows: %w", err)
	}
	return props, nil
}

// propertyDest returns scan targets in propertyColumns order.
func propertyDest(p *domain.Property) []any {
	return []any{
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Address, &p.City, &p.State, &p.ZipCode,
		&p.Lat, &p.Lng, &p.Bedrooms, &p.Bathrooms, &p.SquareFeet, &p.YearBuilt,
		&p.PropertyType, &p.ListingType, &p.ImageURL, &p.UserID, &p.Featured, &p.Status, &p.CreatedAt,
	}
}
