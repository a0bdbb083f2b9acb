// Package pagination pages in-memory result lists. A user's collection is
// loaded whole, so paging runs after search and filtering.
package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (p PageRequest) normalized() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
	return p
}

// PageResponse is one page of items with totals for the whole list.
type PageResponse[T any] struct {
	Data       []T  `json:"data"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// Slice returns the page of items selected by req as a copy. Pages past the
// end are empty, never nil.
func Slice[T any](items []T, req PageRequest) PageResponse[T] {
	req = req.normalized()
	total := len(items)
	start := min((req.Page-1)*req.PageSize, total)
	end := min(start+req.PageSize, total)

	page := make([]T, end-start)
	copy(page, items[start:end])
	return PageResponse[T]{
		Data:       page,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: (total + req.PageSize - 1) / req.PageSize,
		HasMore:    end < total,
	}
}
