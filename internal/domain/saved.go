package domain

import "time"

// SavedProperty marks a property as bookmarked by a user.
type SavedProperty struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// SavedPropertyDetail is a saved row joined with its property.
type SavedPropertyDetail struct {
	SavedProperty
	Property Property `json:"property"`
}
