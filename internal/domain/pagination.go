package domain

// DefaultPageSize is the page size used by listing views when none is
// configured.
const DefaultPageSize = 10

// MaxPageSize is the maximum allowed page size.
const MaxPageSize = 100

// PageRequest holds index-based pagination parameters for list operations.
// PageIndex is zero-based.
type PageRequest struct {
	PageIndex int
	PageSize  int
}

// Limit returns the effective page size, clamped to [1, MaxPageSize].
func (p PageRequest) Limit() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return p.PageSize
}

// Offset returns the number of items to skip for the current page.
func (p PageRequest) Offset() int {
	if p.PageIndex <= 0 {
		return 0
	}
	return p.PageIndex * p.Limit()
}

// TotalPages returns the number of pages needed to show total items.
func (p PageRequest) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	limit := p.Limit()
	return (total + limit - 1) / limit
}

// HasPrev reports whether a previous page exists.
func (p PageRequest) HasPrev() bool {
	return p.PageIndex > 0
}

// HasNext reports whether a next page exists given the total item count.
func (p PageRequest) HasNext(total int) bool {
	return p.PageIndex < p.TotalPages(total)-1
}

// Clamp returns a copy with PageIndex forced into the valid range for the
// given total, so a stale page link past the end lands on the last page.
func (p PageRequest) Clamp(total int) PageRequest {
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	if last := p.TotalPages(total) - 1; last >= 0 && p.PageIndex > last {
		p.PageIndex = last
	}
	return p
}
