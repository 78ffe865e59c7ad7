package http

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/utafrali/estatehub/internal/domain"
	"github.com/utafrali/estatehub/internal/repository"
	"github.com/utafrali/estatehub/pkg/pagination"
)

// anyValue disables a select-style filter.
const anyValue = "any"

// parsePropertyFilter builds a listing filter from query parameters. Empty
// and unknown parameters impose no constraint; malformed numbers and
// inverted ranges are rejected.
func parsePropertyFilter(q url.Values) (repository.PropertyFilter, error) {
	var (
		f   repository.PropertyFilter
		err error
	)

	if v := strings.TrimSpace(q.Get("city")); v != "" {
		f.City = &v
	}
	if f.MinPrice, err = floatParam(q, "minPrice", false); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatParam(q, "maxPrice", false); err != nil {
		return f, err
	}
	if f.MinBeds, err = intParam(q, "minBeds", true); err != nil {
		return f, err
	}
	if f.MinBaths, err = floatParam(q, "minBaths", true); err != nil {
		return f, err
	}
	if v := q.Get("propertyType"); v != "" && v != anyValue {
		f.PropertyType = &v
	}
	if v := q.Get("listingType"); v != "" && v != anyValue {
		if !domain.IsValidListingType(v) {
			return f, fmt.Errorf("listingType must be one of: any, %s", strings.Join(domain.ValidListingTypes(), ", "))
		}
		f.ListingType = &v
	}
	if f.MinSqft, err = intParam(q, "minSqft", false); err != nil {
		return f, err
	}
	if f.MaxSqft, err = intParam(q, "maxSqft", false); err != nil {
		return f, err
	}
	if f.MinYear, err = intParam(q, "minYear", false); err != nil {
		return f, err
	}
	if f.MaxYear, err = intParam(q, "maxYear", false); err != nil {
		return f, err
	}
	if f.Bounds, err = boundsParam(q.Get("bounds")); err != nil {
		return f, err
	}

	if inverted(f.MinPrice, f.MaxPrice) {
		return f, fmt.Errorf("minPrice must not exceed maxPrice")
	}
	if inverted(f.MinSqft, f.MaxSqft) {
		return f, fmt.Errorf("minSqft must not exceed maxSqft")
	}
	if inverted(f.MinYear, f.MaxYear) {
		return f, fmt.Errorf("minYear must not exceed maxYear")
	}

	page, err := pagination.Parse(q)
	if err != nil {
		return f, err
	}
	f.Page, f.PerPage = page.Page, page.PerPage
	return f, nil
}

func floatParam(q url.Values, name string, allowAny bool) (*float64, error) {
	raw := q.Get(name)
	if raw == "" || (allowAny && raw == anyValue) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return &v, nil
}

func intParam(q url.Values, name string, allowAny bool) (*int, error) {
	raw := q.Get(name)
	if raw == "" || (allowAny && raw == anyValue) {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

// boundsParam parses "minLng,minLat,maxLng,maxLat".
func boundsParam(raw string) (*orb.Bound, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounds must be minLng,minLat,maxLng,maxLat")
	}
	var c [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bounds must be minLng,minLat,maxLng,maxLat")
		}
		c[i] = v
	}

	b := orb.Bound{Min: orb.Point{c[0], c[1]}, Max: orb.Point{c[2], c[3]}}
	if b.Min.Lon() > b.Max.Lon() || b.Min.Lat() > b.Max.Lat() {
		return nil, fmt.Errorf("bounds minimum must not exceed maximum")
	}
	if b.Min.Lon() < -180 || b.Max.Lon() > 180 || b.Min.Lat() < -90 || b.Max.Lat() > 90 {
		return nil, fmt.Errorf("bounds out of range")
	}
	return &b, nil
}

func inverted[T int | float64](lo, hi *T) bool {
	return lo != nil && hi != nil && *lo > *hi
}
