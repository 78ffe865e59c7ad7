package domain

import (
	"slices"
	"time"
)

// Listing type constants.
const (
	ListingTypeBuy  = "buy"
	ListingTypeRent = "rent"
)

// Property status constants.
const (
	PropertyStatusAvailable = "available"
	PropertyStatusPending   = "pending"
	PropertyStatusSold      = "sold"
	PropertyStatusRented    = "rented"
)

// Property is a real-estate listing owned by exactly one user.
type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SquareFeet   int       `json:"square_feet"`
	YearBuilt    *int      `json:"year_built,omitempty"`
	PropertyType string    `json:"property_type"`
	ListingType  string    `json:"listing_type"`
	ImageURL     string    `json:"image_url"`
	UserID       string    `json:"user_id"`
	Featured     bool      `json:"featured"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// PropertyDetail is a property together with its derived rating figures.
type PropertyDetail struct {
	Property
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// OwnedBy reports whether userID owns the property.
func (p *Property) OwnedBy(userID string) bool {
	return userID != "" && p.UserID == userID
}

// ValidListingTypes returns the accepted listing types.
func ValidListingTypes() []string {
	return []string{ListingTypeBuy, ListingTypeRent}
}

// IsValidListingType checks whether t is buy or rent.
func IsValidListingType(t string) bool {
	return slices.Contains(ValidListingTypes(), t)
}

// ValidStatuses returns the set of valid property statuses.
func ValidStatuses() []string {
	return []string{PropertyStatusAvailable, PropertyStatusPending, PropertyStatusSold, PropertyStatusRented}
}

// IsValidStatus checks whether the given string is a valid property status.
func IsValidStatus(status string) bool {
	return slices.Contains(ValidStatuses(), status)
}
