package store

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/devlog/internal/listing"
)

// postColumns maps descriptor field names to SQL columns. Fields missing
// from the map are dropped so a descriptor can never inject SQL.
var postColumns = map[string]string{
	listing.FieldCategory:  "category",
	listing.FieldTitle:     "title",
	listing.FieldCreatedAt: "created_at",
}

const basePostsSelect = `SELECT id, title, content, category, thumbnail_url,
	author_id, created_at, updated_at
FROM posts`

const countPostsSelect = "SELECT COUNT(*) FROM posts"

const defaultPostsOrder = "created_at DESC"

// postsSQL builds the data and count queries for a listing descriptor and
// the positional parameters shared by both.
func postsSQL(d *listing.Descriptor) (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	for _, f := range d.Filters {
		col, ok := postColumns[f.Field]
		if !ok || f.Op != listing.OpEq {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", col, paramIdx))
		args = append(args, f.Value)
		paramIdx++
	}

	if d.Text != nil {
		if col, ok := postColumns[d.Text.Field]; ok && d.Text.Op == listing.OpILike {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", col, paramIdx))
			args = append(args, d.Text.Pattern)
		}
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultPostsOrder
	if col, ok := postColumns[d.Sort.Field]; ok {
		dir := "ASC"
		if d.Sort.Descending {
			dir = "DESC"
		}
		orderClause = col + " " + dir
	}

	// PostgreSQL rejects a negative OFFSET; page validation happens upstream.
	offset := max(d.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s, id LIMIT %d OFFSET %d",
		basePostsSelect, whereClause, orderClause, d.Limit, offset,
	)

	countSQL = countPostsSelect + whereClause

	return dataSQL, countSQL, args
}
