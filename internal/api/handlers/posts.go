package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/devlog/internal/listing"
	"github.com/donaldgifford/devlog/internal/metrics"
	"github.com/donaldgifford/devlog/internal/store"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// PostReader is the store surface the post endpoints read from.
type PostReader interface {
	listing.Executor
	GetPost(ctx context.Context, id string) (*domain.Post, error)
}

// PostsHandler serves the post listing and detail endpoints.
type PostsHandler struct {
	posts   PostReader
	builder *listing.Builder
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(posts PostReader, builder *listing.Builder) *PostsHandler {
	return &PostsHandler{posts: posts, builder: builder}
}

// ListPostsInput carries the raw listing parameters. Page is a string so
// that malformed values reach the same validation as the web pages.
type ListPostsInput struct {
	Category string `query:"category" doc:"Category name, or \"all\" for every category" example:"React"`
	Query    string `query:"q"        doc:"Case-insensitive title substring"`
	Page     string `query:"page"     doc:"1-based page number (default 1)"                example:"2"`
}

// ListPostsOutput is one page of posts plus pagination metadata.
type ListPostsOutput struct {
	Body struct {
		Posts             []domain.Post `json:"posts"`
		Total             int           `json:"total"`
		TotalPages        int           `json:"total_pages"`
		Page              int           `json:"page"`
		PageSize          int           `json:"page_size"`
		PaginationVisible bool          `json:"pagination_visible"`
	}
}

// GetPostInput is the input for fetching a single post.
type GetPostInput struct {
	ID string `path:"id" doc:"Post UUID"`
}

// GetPostOutput is a single post.
type GetPostOutput struct {
	Body domain.Post
}

// ListPosts returns one page of posts, newest first.
func (h *PostsHandler) ListPosts(
	ctx context.Context,
	input *ListPostsInput,
) (*ListPostsOutput, error) {
	req, err := h.builder.Parse(input.Category, input.Query, input.Page)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	res, err := h.builder.Fetch(ctx, h.posts, req)
	metrics.ObserveListing(req.Filtered(), resultTotal(res), err)
	if err != nil {
		return nil, internalError(ctx, "listing posts failed", err)
	}

	resp := &ListPostsOutput{}
	resp.Body.Posts = res.Items
	resp.Body.Total = res.TotalCount
	resp.Body.TotalPages = res.TotalPages
	resp.Body.Page = res.Page
	resp.Body.PageSize = res.PageSize
	resp.Body.PaginationVisible = res.PaginationVisible

	return resp, nil
}

// GetPost returns a single post by ID.
func (h *PostsHandler) GetPost(
	ctx context.Context,
	input *GetPostInput,
) (*GetPostOutput, error) {
	p, err := h.posts.GetPost(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("post not found")
		}
		return nil, internalError(ctx, "loading post failed", err)
	}

	return &GetPostOutput{Body: *p}, nil
}

func resultTotal(res *listing.PageResult) int {
	if res == nil {
		return 0
	}
	return res.TotalCount
}

// RegisterPostRoutes registers post endpoints with the Huma API.
func RegisterPostRoutes(api huma.API, h *PostsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-posts",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts",
		Summary:     "List posts",
		Description: "Returns one page of posts, newest first, optionally filtered by category and title.",
		Tags:        []string{"posts"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ListPosts)

	huma.Register(api, huma.Operation{
		OperationID: "get-post",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Get a post by ID",
		Tags:        []string{"posts"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetPost)
}
