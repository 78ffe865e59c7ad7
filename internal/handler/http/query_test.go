package http

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyFilter_AllParameters(t *testing.T) {
	q := url.Values{
		"city":         {"Austin"},
		"minPrice":     {"100000"},
		"maxPrice":     {"500000.5"},
		"minBeds":      {"2"},
		"minBaths":     {"1.5"},
		"propertyType": {"condo"},
		"listingType":  {"rent"},
		"minSqft":      {"800"},
		"maxSqft":      {"2400"},
		"minYear":      {"1990"},
		"maxYear":      {"2020"},
		"bounds":       {"-98.0,30.0,-97.5,30.5"},
		"page":         {"3"},
		"per_page":     {"10"},
	}

	f, err := parsePropertyFilter(q)
	require.NoError(t, err)

	assert.Equal(t, "Austin", *f.City)
	assert.Equal(t, 100000.0, *f.MinPrice)
	assert.Equal(t, 500000.5, *f.MaxPrice)
	assert.Equal(t, 2, *f.MinBeds)
	assert.Equal(t, 1.5, *f.MinBaths)
	assert.Equal(t, "condo", *f.PropertyType)
	assert.Equal(t, "rent", *f.ListingType)
	assert.Equal(t, 800, *f.MinSqft)
	assert.Equal(t, 2400, *f.MaxSqft)
	assert.Equal(t, 1990, *f.MinYear)
	assert.Equal(t, 2020, *f.MaxYear)
	require.NotNil(t, f.Bounds)
	assert.Equal(t, -98.0, f.Bounds.Min.Lon())
	assert.Equal(t, 30.5, f.Bounds.Max.Lat())
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.PerPage)
}

func TestParsePropertyFilter_AbsentEmptyAndAnyImposeNothing(t *testing.T) {
	q := url.Values{
		"city":         {""},
		"minPrice":     {""},
		"minBeds":      {"any"},
		"minBaths":     {"any"},
		"propertyType": {"any"},
		"listingType":  {"any"},
		"sort":         {"weird"},
	}

	f, err := parsePropertyFilter(q)
	require.NoError(t, err)

	assert.Nil(t, f.City)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MinBeds)
	assert.Nil(t, f.MinBaths)
	assert.Nil(t, f.PropertyType)
	assert.Nil(t, f.ListingType)
	assert.Nil(t, f.Bounds)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PerPage)
}

func TestParsePropertyFilter_Rejections(t *testing.T) {
	tests := []struct {
		name string
		q    url.Values
		msg  string
	}{
		{"non-numeric price", url.Values{"minPrice": {"cheap"}}, "minPrice must be a number"},
		{"NaN price", url.Values{"maxPrice": {"NaN"}}, "maxPrice must be a number"},
		{"fractional beds", url.Values{"minBeds": {"2.5"}}, "minBeds must be an integer"},
		{"any not allowed for sqft", url.Values{"minSqft": {"any"}}, "minSqft must be an integer"},
		{"unknown listing type", url.Values{"listingType": {"lease"}}, "listingType must be one of"},
		{"inverted price", url.Values{"minPrice": {"10"}, "maxPrice": {"5"}}, "minPrice must not exceed maxPrice"},
		{"inverted sqft", url.Values{"minSqft": {"3000"}, "maxSqft": {"1000"}}, "minSqft must not exceed maxSqft"},
		{"inverted year", url.Values{"minYear": {"2020"}, "maxYear": {"1990"}}, "minYear must not exceed maxYear"},
		{"short bounds", url.Values{"bounds": {"1,2,3"}}, "bounds must be"},
		{"inverted bounds", url.Values{"bounds": {"10,0,5,1"}}, "must not exceed"},
		{"bounds out of range", url.Values{"bounds": {"-200,0,5,1"}}, "out of range"},
		{"bad page", url.Values{"page": {"0"}}, "page must be a positive integer"},
		{"page overflowing offset", url.Values{"page": {"922337203685477580"}, "per_page": {"100"}}, "page must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePropertyFilter(tt.q)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestParsePropertyFilter_EqualRangeAllowed(t *testing.T) {
	f, err := parsePropertyFilter(url.Values{"minPrice": {"5"}, "maxPrice": {"5"}})
	require.NoError(t, err)
	assert.Equal(t, *f.MinPrice, *f.MaxPrice)
}
