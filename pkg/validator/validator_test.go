package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingBody struct {
	Title       string   `json:"title" validate:"required,max=10"`
	Price       float64  `json:"price" validate:"gt=0"`
	Lat         float64  `json:"lat" validate:"latitude"`
	ListingType string   `json:"listing_type" validate:"oneof=buy rent"`
	YearBuilt   *int     `json:"year_built" validate:"omitempty,gt=0"`
	Ignored     string   `json:"-"`
	Tags        []string `json:"tags" validate:"max=2"`
}

func validListing() listingBody {
	return listingBody{Title: "Loft", Price: 1, Lat: 40.7, ListingType: "rent"}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validListing()))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	b := validListing()
	b.ListingType = "lease"

	fields := fieldsOf(t, Validate(b))
	assert.Equal(t, "must be one of: buy rent", fields["listing_type"])
}

func TestValidate_Messages(t *testing.T) {
	zero := 0
	b := listingBody{
		Title:       "",
		Price:       0,
		Lat:         123,
		ListingType: "buy",
		YearBuilt:   &zero,
		Tags:        []string{"a", "b", "c"},
	}

	fields := fieldsOf(t, Validate(b))
	assert.Equal(t, "is required", fields["title"])
	assert.Equal(t, "must be greater than 0", fields["price"])
	assert.Equal(t, "must be a valid latitude", fields["lat"])
	assert.Equal(t, "must be greater than 0", fields["year_built"])
	assert.Equal(t, "must be at most 2", fields["tags"])
}

func TestValidate_StringLength(t *testing.T) {
	b := validListing()
	b.Title = "a very long title"

	fields := fieldsOf(t, Validate(b))
	assert.Equal(t, "must be at most 10 characters", fields["title"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(listingBody{ListingType: "buy", Price: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'title' is required")
}

type zoneBody struct {
	Zone  string  `json:"zone" validate:"required,zone_code"`
	Alias *string `json:"alias" validate:"omitempty,zone_code"`
}

func TestRegisterStringRule(t *testing.T) {
	RegisterStringRule("zone_code", "must be R1 or C2", func(s string) bool {
		return s == "R1" || s == "C2"
	})

	assert.NoError(t, Validate(zoneBody{Zone: "R1"}))

	bad := "X9"
	fields := fieldsOf(t, Validate(zoneBody{Zone: "C3", Alias: &bad}))
	assert.Equal(t, "must be R1 or C2", fields["zone"])
	assert.Equal(t, "must be R1 or C2", fields["alias"])
}
