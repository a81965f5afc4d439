// Package listing turns post listing parameters (category, search text, page)
// into a bounded query descriptor for the post store, and derives pagination
// metadata from the store's result. Everything here is pure and safe for
// concurrent use; the store performs all I/O.
package listing

// Field names understood by the post store.
const (
	FieldCategory  = "category"
	FieldTitle     = "title"
	FieldCreatedAt = "created_at"
)

// Op is a filter comparison operator.
type Op string

// Supported operators.
const (
	OpEq    Op = "eq"
	OpILike Op = "ilike"
)

// Request is one listing request after parsing.
type Request struct {
	Category Category
	Query    string // free text, "" means no text filter; never trimmed
	Page     int    // 1-based
	PageSize int
}

// Filter is an exact-match condition.
type Filter struct {
	Field string
	Op    Op
	Value string
}

// TextFilter is a case-insensitive pattern match where % is a wildcard.
type TextFilter struct {
	Field   string
	Op      Op
	Pattern string
}

// Sort is a single-column ordering.
type Sort struct {
	Field      string
	Descending bool
}

// Descriptor describes a page of posts to fetch.
type Descriptor struct {
	Filters []Filter
	Text    *TextFilter
	Sort    Sort
	Offset  int
	Limit   int
}

// newestFirst is the only ordering the listing uses.
var newestFirst = Sort{Field: FieldCreatedAt, Descending: true}

// BuildQuery builds the descriptor for req. Page is used arithmetically only:
// a page below 1 yields a negative offset, which callers must prevent.
func BuildQuery(req Request) Descriptor {
	d := Descriptor{
		Sort:   newestFirst,
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
	}

	if !req.Category.IsAll() {
		d.Filters = append(d.Filters, Filter{
			Field: FieldCategory,
			Op:    OpEq,
			Value: req.Category.Name(),
		})
	}

	if req.Query != "" {
		d.Text = &TextFilter{
			Field:   FieldTitle,
			Op:      OpILike,
			Pattern: "%" + req.Query + "%",
		}
	}

	return d
}

// Filtered reports whether the descriptor narrows the post set at all.
func (d *Descriptor) Filtered() bool {
	return len(d.Filters) > 0 || d.Text != nil
}

// Filtered reports whether req narrows the post set by category or title.
func (r Request) Filtered() bool {
	return !r.Category.IsAll() || r.Query != ""
}
