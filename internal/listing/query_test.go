package listing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
		want Descriptor
	}{
		{
			name: "all categories first page",
			req:  Request{Category: AllCategories, Page: 1, PageSize: 6},
			want: Descriptor{Sort: newestFirst, Offset: 0, Limit: 6},
		},
		{
			name: "named category second page",
			req:  Request{Category: Named("React"), Page: 2, PageSize: 6},
			want: Descriptor{
				Filters: []Filter{{Field: "category", Op: OpEq, Value: "React"}},
				Sort:    newestFirst,
				Offset:  6,
				Limit:   6,
			},
		},
		{
			name: "search text on all categories",
			req:  Request{Category: AllCategories, Query: "hooks", Page: 1, PageSize: 6},
			want: Descriptor{
				Text:   &TextFilter{Field: "title", Op: OpILike, Pattern: "%hooks%"},
				Sort:   newestFirst,
				Offset: 0,
				Limit:  6,
			},
		},
		{
			name: "category and search combined",
			req:  Request{Category: Named("Git"), Query: "rebase", Page: 3, PageSize: 6},
			want: Descriptor{
				Filters: []Filter{{Field: "category", Op: OpEq, Value: "Git"}},
				Text:    &TextFilter{Field: "title", Op: OpILike, Pattern: "%rebase%"},
				Sort:    newestFirst,
				Offset:  12,
				Limit:   6,
			},
		},
		{
			name: "query whitespace passes through untrimmed",
			req:  Request{Category: AllCategories, Query: " go ", Page: 1, PageSize: 6},
			want: Descriptor{
				Text:   &TextFilter{Field: "title", Op: OpILike, Pattern: "% go %"},
				Sort:   newestFirst,
				Offset: 0,
				Limit:  6,
			},
		},
		{
			name: "category match is case sensitive",
			req:  Request{Category: Named("react"), Page: 1, PageSize: 6},
			want: Descriptor{
				Filters: []Filter{{Field: "category", Op: OpEq, Value: "react"}},
				Sort:    newestFirst,
				Limit:   6,
			},
		},
		{
			name: "page zero yields negative offset",
			req:  Request{Category: AllCategories, Page: 0, PageSize: 6},
			want: Descriptor{Sort: newestFirst, Offset: -6, Limit: 6},
		},
		{
			name: "negative page yields negative offset",
			req:  Request{Category: AllCategories, Page: -2, PageSize: 6},
			want: Descriptor{Sort: newestFirst, Offset: -18, Limit: 6},
		},
		{
			name: "custom page size",
			req:  Request{Category: AllCategories, Page: 4, PageSize: 10},
			want: Descriptor{Sort: newestFirst, Offset: 30, Limit: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildQuery(tt.req)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildQuery() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildQuery_Deterministic(t *testing.T) {
	t.Parallel()

	req := Request{Category: Named("CSS"), Query: "grid", Page: 2, PageSize: 6}
	first := BuildQuery(req)
	for range 20 {
		if diff := cmp.Diff(first, BuildQuery(req)); diff != "" {
			t.Fatalf("BuildQuery() not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestBuildQuery_SortIsFixed(t *testing.T) {
	t.Parallel()

	for _, req := range []Request{
		{Category: AllCategories, Page: 1, PageSize: 6},
		{Category: Named("Dev"), Query: "x", Page: 9, PageSize: 3},
	} {
		d := BuildQuery(req)
		assert.Equal(t, Sort{Field: "created_at", Descending: true}, d.Sort)
	}
}

func TestDescriptor_Filtered(t *testing.T) {
	t.Parallel()

	all := BuildQuery(Request{Category: AllCategories, Page: 1, PageSize: 6})
	assert.False(t, all.Filtered())

	named := BuildQuery(Request{Category: Named("Git"), Page: 1, PageSize: 6})
	assert.True(t, named.Filtered())

	search := BuildQuery(Request{Category: AllCategories, Query: "q", Page: 1, PageSize: 6})
	assert.True(t, search.Filtered())
}

func TestRequest_FilteredMatchesDescriptor(t *testing.T) {
	t.Parallel()

	for _, req := range []Request{
		{Category: AllCategories, Page: 1, PageSize: 6},
		{Category: Named("React"), Page: 2, PageSize: 6},
		{Category: AllCategories, Query: "hooks", Page: 1, PageSize: 6},
	} {
		d := BuildQuery(req)
		assert.Equal(t, d.Filtered(), req.Filtered(), "request %+v", req)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		wantAll  bool
		wantName string
		wantStr  string
	}{
		{raw: "", wantAll: true, wantStr: "all"},
		{raw: "all", wantAll: true, wantStr: "all"},
		{raw: "All", wantAll: false, wantName: "All", wantStr: "All"},
		{raw: "Node.js", wantAll: false, wantName: "Node.js", wantStr: "Node.js"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			c := ParseCategory(tt.raw)
			assert.Equal(t, tt.wantAll, c.IsAll())
			assert.Equal(t, tt.wantName, c.Name())
			assert.Equal(t, tt.wantStr, c.String())
		})
	}
}
