package ccm

import (
	"context"
	"fmt"
)

// Page size bounds for list requests.
const (
	// DefaultPageSize is used when a client does not configure a page size.
	DefaultPageSize = 2500

	// MaxPageSize is the largest page size the API accepts.
	MaxPageSize = 5000
)

// ValidatePageSize checks that n is usable as a list page size.
func ValidatePageSize(n int) error {
	if n <= 0 || n > MaxPageSize {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidPageSize, n, MaxPageSize)
	}

	return nil
}

// PageFunc fetches one page of records at the given offset.
type PageFunc func(ctx context.Context, limit, offset int) ([]RawRecord, error)

// WalkPages collects every record by fetching successive pages. The offset
// advances by the number of records actually received, and the walk ends as
// soon as a page comes back shorter than the requested limit. Totals
// reported by the server are never consulted. Fetch errors are returned
// unmodified.
func WalkPages(ctx context.Context, limit int, fetch PageFunc) ([]RawRecord, error) {
	err := ValidatePageSize(limit)
	if err != nil {
		return nil, err
	}

	var all []RawRecord

	offset := 0

	for {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		page, err := fetch(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) < limit {
			return all, nil
		}

		offset += len(page)
	}
}
