package listing

import (
	"fmt"

	domain "github.com/donaldgifford/devlog/pkg/types"
)

// TotalPages returns ceil(totalCount / pageSize), which is 0 for an empty
// result. A non-positive pageSize is a programming error and panics.
func TotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		panic(fmt.Sprintf("listing: page size must be positive, got %d", pageSize))
	}
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}

// PaginationVisible reports whether page navigation should be shown.
// Empty and single-page results get no controls.
func PaginationVisible(totalPages int) bool {
	return totalPages > 1
}

// PageResult is one executed listing page.
type PageResult struct {
	Items             []domain.Post
	TotalCount        int
	TotalPages        int
	Page              int
	PageSize          int
	PaginationVisible bool
}

// NewPageResult derives the page metadata for items and totalCount.
func NewPageResult(items []domain.Post, totalCount int, req Request) *PageResult {
	if items == nil {
		items = []domain.Post{}
	}
	pages := TotalPages(totalCount, req.PageSize)
	return &PageResult{
		Items:             items,
		TotalCount:        totalCount,
		TotalPages:        pages,
		Page:              req.Page,
		PageSize:          req.PageSize,
		PaginationVisible: PaginationVisible(pages),
	}
}

// Pager holds the previous/next targets for the navigation controls.
type Pager struct {
	Current int
	Total   int
	Prev    int
	Next    int
	HasPrev bool
	HasNext bool
}

// NewPager computes the navigation targets for page current of total.
func NewPager(current, total int) Pager {
	return Pager{
		Current: current,
		Total:   total,
		Prev:    max(1, current-1),
		Next:    max(1, min(total, current+1)),
		HasPrev: current > 1,
		HasNext: current < total,
	}
}

// Pager returns the navigation controls for r.
func (r *PageResult) Pager() Pager {
	return NewPager(r.Page, r.TotalPages)
}
