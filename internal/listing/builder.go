package listing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	domain "github.com/donaldgifford/devlog/pkg/types"
)

// DefaultPageSize is the number of posts shown per listing page.
const DefaultPageSize = 6

// ErrInvalidPageNumber is returned for page values that are not integers >= 1.
var ErrInvalidPageNumber = errors.New("invalid page number")

// Executor runs a descriptor against the post store and returns the page of
// posts plus the total number of posts matching the filters.
type Executor interface {
	ListPosts(ctx context.Context, d *Descriptor) ([]domain.Post, int, error)
}

// Builder parses raw listing parameters with a fixed page size.
type Builder struct {
	pageSize int
}

// NewBuilder returns a Builder for pageSize posts per page.
// A non-positive pageSize panics.
func NewBuilder(pageSize int) *Builder {
	if pageSize <= 0 {
		panic(fmt.Sprintf("listing: page size must be positive, got %d", pageSize))
	}
	return &Builder{pageSize: pageSize}
}

// PageSize returns the configured page size.
func (b *Builder) PageSize() int { return b.pageSize }

// Parse validates raw query-string parameters. An empty page means page 1.
// Pages that are not integers, are below 1, or are so large that their
// offset overflows int are rejected with ErrInvalidPageNumber rather than
// clamped.
func (b *Builder) Parse(category, query, page string) (Request, error) {
	n := 1
	if page != "" {
		v, err := strconv.Atoi(page)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %q", ErrInvalidPageNumber, page)
		}
		n = v
	}
	if n < 1 || n-1 > math.MaxInt/b.pageSize {
		return Request{}, fmt.Errorf("%w: %d", ErrInvalidPageNumber, n)
	}

	return Request{
		Category: ParseCategory(category),
		Query:    query,
		Page:     n,
		PageSize: b.pageSize,
	}, nil
}

// Fetch builds the descriptor for req, executes it and derives the page
// metadata. Executor errors are returned as-is.
func (*Builder) Fetch(ctx context.Context, exec Executor, req Request) (*PageResult, error) {
	d := BuildQuery(req)

	items, total, err := exec.ListPosts(ctx, &d)
	if err != nil {
		return nil, err
	}

	return NewPageResult(items, total, req), nil
}
