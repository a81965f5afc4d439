package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totalCount int
		pageSize   int
		want       int
	}{
		{name: "empty result", totalCount: 0, pageSize: 6, want: 0},
		{name: "single post", totalCount: 1, pageSize: 6, want: 1},
		{name: "exactly one page", totalCount: 6, pageSize: 6, want: 1},
		{name: "one over a page", totalCount: 7, pageSize: 6, want: 2},
		{name: "thirteen posts", totalCount: 13, pageSize: 6, want: 3},
		{name: "exact multiple", totalCount: 18, pageSize: 6, want: 3},
		{name: "page size one", totalCount: 5, pageSize: 1, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TotalPages(tt.totalCount, tt.pageSize))
		})
	}
}

func TestTotalPages_NonPositivePageSizePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { TotalPages(10, 0) })
	assert.Panics(t, func() { TotalPages(10, -6) })
}

func TestPaginationVisible(t *testing.T) {
	t.Parallel()

	assert.False(t, PaginationVisible(0))
	assert.False(t, PaginationVisible(1))
	assert.True(t, PaginationVisible(2))
	assert.True(t, PaginationVisible(40))
}

func TestNewPager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		total   int
		want    Pager
	}{
		{
			name:    "first of three",
			current: 1,
			total:   3,
			want:    Pager{Current: 1, Total: 3, Prev: 1, Next: 2, HasPrev: false, HasNext: true},
		},
		{
			name:    "middle page",
			current: 2,
			total:   3,
			want:    Pager{Current: 2, Total: 3, Prev: 1, Next: 3, HasPrev: true, HasNext: true},
		},
		{
			name:    "last page",
			current: 3,
			total:   3,
			want:    Pager{Current: 3, Total: 3, Prev: 2, Next: 3, HasPrev: true, HasNext: false},
		},
		{
			name:    "past the end",
			current: 5,
			total:   3,
			want:    Pager{Current: 5, Total: 3, Prev: 4, Next: 3, HasPrev: true, HasNext: false},
		},
		{
			name:    "no pages",
			current: 1,
			total:   0,
			want:    Pager{Current: 1, Total: 0, Prev: 1, Next: 1, HasPrev: false, HasNext: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewPager(tt.current, tt.total))
		})
	}
}
