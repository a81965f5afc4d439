package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/devlog/internal/listing"
)

func TestPostsSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		req           listing.Request
		desc          *listing.Descriptor // overrides req when set
		wantDataHas   []string
		wantDataNotIn []string
		wantCountSQL  string
		wantArgs      []any
	}{
		{
			name: "all categories first page",
			req:  listing.Request{Category: listing.AllCategories, Page: 1, PageSize: 6},
			wantDataHas: []string{
				"FROM posts",
				"ORDER BY created_at DESC, id",
				"LIMIT 6",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM posts",
		},
		{
			name: "category filter",
			req:  listing.Request{Category: listing.Named("React"), Page: 2, PageSize: 6},
			wantDataHas: []string{
				"WHERE category = $1",
				"LIMIT 6",
				"OFFSET 6",
			},
			wantCountSQL: "SELECT COUNT(*) FROM posts WHERE category = $1",
			wantArgs:     []any{"React"},
		},
		{
			name:         "title search",
			req:          listing.Request{Category: listing.AllCategories, Query: "hooks", Page: 1, PageSize: 6},
			wantDataHas:  []string{"WHERE title ILIKE $1"},
			wantCountSQL: "SELECT COUNT(*) FROM posts WHERE title ILIKE $1",
			wantArgs:     []any{"%hooks%"},
		},
		{
			name: "category and search numbered in order",
			req: listing.Request{
				Category: listing.Named("Git"),
				Query:    "rebase",
				Page:     3,
				PageSize: 6,
			},
			wantDataHas:  []string{"WHERE category = $1 AND title ILIKE $2", "OFFSET 12"},
			wantCountSQL: "SELECT COUNT(*) FROM posts WHERE category = $1 AND title ILIKE $2",
			wantArgs:     []any{"Git", "%rebase%"},
		},
		{
			name:          "negative offset floored",
			req:           listing.Request{Category: listing.AllCategories, Page: 0, PageSize: 6},
			wantDataHas:   []string{"OFFSET 0"},
			wantDataNotIn: []string{"OFFSET -6"},
		},
		{
			name: "unknown filter field ignored",
			desc: &listing.Descriptor{
				Filters: []listing.Filter{{Field: "1=1; DROP TABLE posts; --", Op: listing.OpEq, Value: "x"}},
				Sort:    listing.Sort{Field: "created_at", Descending: true},
				Limit:   6,
			},
			wantDataNotIn: []string{"WHERE", "DROP TABLE"},
			wantCountSQL:  "SELECT COUNT(*) FROM posts",
		},
		{
			name: "unknown sort field falls back to default",
			desc: &listing.Descriptor{
				Sort:  listing.Sort{Field: "password_hash"},
				Limit: 6,
			},
			wantDataHas:   []string{"ORDER BY created_at DESC"},
			wantDataNotIn: []string{"password_hash"},
		},
		{
			name: "ascending sort",
			desc: &listing.Descriptor{
				Sort:  listing.Sort{Field: "title"},
				Limit: 6,
			},
			wantDataHas: []string{"ORDER BY title ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := tt.desc
			if d == nil {
				built := listing.BuildQuery(tt.req)
				d = &built
			}

			dataSQL, countSQL, args := postsSQL(d)

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s, "dataSQL should contain %q", s)
			}

			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s, "dataSQL should not contain %q", s)
			}

			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}

			if tt.wantArgs != nil {
				require.Len(t, args, len(tt.wantArgs))
				assert.Equal(t, tt.wantArgs, args)
			} else {
				assert.Empty(t, args)
			}
		})
	}
}
