package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Property Tests
// ============================================================================

func TestIsValidListingType(t *testing.T) {
	assert.True(t, IsValidListingType(ListingTypeBuy))
	assert.True(t, IsValidListingType(ListingTypeRent))
	assert.False(t, IsValidListingType("lease"))
	assert.False(t, IsValidListingType("any"))
	assert.False(t, IsValidListingType(""))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, IsValidStatus(s), "expected %q to be valid", s)
	}
	assert.False(t, IsValidStatus("AVAILABLE"))
	assert.False(t, IsValidStatus("archived"))
}

func TestProperty_OwnedBy(t *testing.T) {
	p := Property{UserID: "user_1"}
	assert.True(t, p.OwnedBy("user_1"))
	assert.False(t, p.OwnedBy("user_2"))
	assert.False(t, p.OwnedBy(""))

	orphan := Property{}
	assert.False(t, orphan.OwnedBy(""))
}

// ============================================================================
// Rating Tests
// ============================================================================

func TestSummarizeRatings(t *testing.T) {
	tests := []struct {
		name      string
		values    []int
		wantAvg   float64
		wantCount int
	}{
		{"no ratings", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"mean is not rounded", []int{5, 4, 4}, 13.0 / 3.0, 3},
		{"all extremes", []int{1, 5}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeRatings(tt.values)
			assert.InDelta(t, tt.wantAvg, got.AvgRating, 1e-9)
			assert.Equal(t, tt.wantCount, got.RatingCount)
		})
	}
}

func TestIsValidRating(t *testing.T) {
	assert.False(t, IsValidRating(0))
	assert.True(t, IsValidRating(1))
	assert.True(t, IsValidRating(5))
	assert.False(t, IsValidRating(6))
}

// ============================================================================
// Appointment Lifecycle Tests
// ============================================================================

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{"unknown", AppointmentStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAppointment_Cancel(t *testing.T) {
	a := Appointment{Status: AppointmentStatusPending}
	changed, err := a.Cancel()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, AppointmentStatusCancelled, a.Status)

	changed, err = a.Cancel()
	require.NoError(t, err)
	assert.False(t, changed, "cancelling twice is a no-op")

	confirmed := Appointment{Status: AppointmentStatusConfirmed}
	changed, err = confirmed.Cancel()
	require.NoError(t, err)
	assert.True(t, changed)

	corrupt := Appointment{Status: "archived"}
	_, err = corrupt.Cancel()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsValidAppointmentStatus(t *testing.T) {
	assert.True(t, IsValidAppointmentStatus(AppointmentStatusPending))
	assert.True(t, IsValidAppointmentStatus(AppointmentStatusCancelled))
	assert.False(t, IsValidAppointmentStatus("done"))
}
