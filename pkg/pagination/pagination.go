package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps Offset well inside int32 for any page size.
	MaxPage = math.MaxInt32 / MaxPerPage
)

// Params is a validated page request.
type Params struct {
	Page    int
	PerPage int
}

// Offset is the number of rows to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Default returns the first page at the default size.
func Default() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// Parse reads page and per_page from q. Absent or empty values take the
// defaults, a per_page above MaxPerPage is capped, and anything that is not
// a positive integer, or a page beyond MaxPage, is an error.
func Parse(q url.Values) (Params, error) {
	p := Default()

	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return Params{}, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		if v > MaxPage {
			return Params{}, fmt.Errorf("page must not exceed %d, got %q", MaxPage, raw)
		}
		p.Page = v
	}

	if raw := q.Get("per_page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return Params{}, fmt.Errorf("per_page must be a positive integer, got %q", raw)
		}
		p.PerPage = min(v, MaxPerPage)
	}

	return p, nil
}
