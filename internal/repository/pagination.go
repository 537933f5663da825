package repository

// PageRequest captures offset pagination parameters.
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize clamps page numbers and sizes to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset returns the SQL offset for the request.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page wraps one page of results with the total row count.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int64
}
