package listing

// AllLabel is the query-string value that selects every category.
const AllLabel = "all"

// Category selects the posts of one named category, or of all of them.
// The zero value is AllCategories.
type Category struct {
	name  string
	named bool
}

// AllCategories applies no category filter.
var AllCategories = Category{}

// Named returns a category that matches name exactly (case-sensitive).
func Named(name string) Category {
	return Category{name: name, named: true}
}

// ParseCategory converts a raw query-string value into a Category.
// Absent, empty and AllLabel values mean all categories.
func ParseCategory(raw string) Category {
	if raw == "" || raw == AllLabel {
		return AllCategories
	}
	return Named(raw)
}

// IsAll reports whether c applies no filter.
func (c Category) IsAll() bool { return !c.named }

// Name returns the category name, or "" for AllCategories.
func (c Category) Name() string { return c.name }

// String returns the query-string form of c.
func (c Category) String() string {
	if !c.named {
		return AllLabel
	}
	return c.name
}
