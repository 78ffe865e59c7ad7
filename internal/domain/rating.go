package domain

import "time"

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is one user's score for a property. A user holds at most one
// rating per property; rating again overwrites it.
type Rating struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingSummary holds the derived aggregate for a property's ratings.
type RatingSummary struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// IsValidRating checks that n is within [MinRating, MaxRating].
func IsValidRating(n int) bool {
	return n >= MinRating && n <= MaxRating
}

// SummarizeRatings computes the arithmetic mean and count of values.
// An empty slice yields a zero average.
func SummarizeRatings(values []int) RatingSummary {
	if len(values) == 0 {
		return RatingSummary{}
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return RatingSummary{
		AvgRating:   float64(sum) / float64(len(values)),
		RatingCount: len(values),
	}
}
