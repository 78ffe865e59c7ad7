package postgres

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/estatehub/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var propertyColumnNames = []string{
	"id", "title", "description", "price", "address", "city", "state", "zip_code", "lat", "lng",
	"bedrooms", "bathrooms", "square_feet", "year_built", "property_type", "listing_type", "image_url",
	"user_id", "featured", "status", "created_at",
}

func sampleProperty() domain.Property {
	return domain.Property{
		ID:           "0b6c3f5e-8a4e-4a8f-9a55-0d1f0c2a7b11",
		Title:        "Bungalow near Zilker",
		Description:  "Three bed craftsman with a deep lot",
		Price:        685000,
		Address:      "1204 Kinney Ave",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78704",
		Lat:          30.2561,
		Lng:          -97.7664,
		Bedrooms:     3,
		Bathrooms:    2.5,
		SquareFeet:   1840,
		YearBuilt:    intPtr(1948),
		PropertyType: "house",
		ListingType:  domain.ListingTypeBuy,
		ImageURL:     "https://images.example.com/kinney.jpg",
		UserID:       "user_1",
		Featured:     true,
		Status:       domain.PropertyStatusAvailable,
		CreatedAt:    now,
	}
}

func propertyRow(p domain.Property) []any {
	return []any{
		p.ID, p.Title, p.Description, p.Price, p.Address, p.City, p.State, p.ZipCode, p.Lat, p.Lng,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.YearBuilt, p.PropertyType, p.ListingType, p.ImageURL,
		p.UserID, p.Featured, p.Status, p.CreatedAt,
	}
}
