package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/devlog/pkg/types"
)

// PostsPage is one page of the post listing.
type PostsPage struct {
	Posts             []domain.Post `json:"posts"`
	Total             int           `json:"total"`
	TotalPages        int           `json:"total_pages"`
	Page              int           `json:"page"`
	PageSize          int           `json:"page_size"`
	PaginationVisible bool          `json:"pagination_visible"`
}

// ListPostsParams selects a listing page. Zero values use server defaults.
type ListPostsParams struct {
	Category string
	Query    string
	Page     int
}

// ListPosts returns one page of posts, newest first.
func (c *Client) ListPosts(ctx context.Context, params *ListPostsParams) (*PostsPage, error) {
	q := url.Values{}
	if params != nil {
		if params.Category != "" {
			q.Set("category", params.Category)
		}
		if params.Query != "" {
			q.Set("q", params.Query)
		}
		if params.Page > 0 {
			q.Set("page", strconv.Itoa(params.Page))
		}
	}

	path := "/api/v1/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp PostsPage
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPost returns a single post by ID.
func (c *Client) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	if err := c.get(ctx, "/api/v1/posts/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns the categories in display order.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var resp struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/v1/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
