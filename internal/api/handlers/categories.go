package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/donaldgifford/devlog/pkg/types"
)

// CategoryLister lists the configured post categories.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoriesHandler serves the category list.
type CategoriesHandler struct {
	categories CategoryLister
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(c CategoryLister) *CategoriesHandler {
	return &CategoriesHandler{categories: c}
}

// ListCategoriesOutput is the category list in display order.
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

// ListCategories returns every category in display order.
func (h *CategoriesHandler) ListCategories(
	ctx context.Context,
	_ *struct{},
) (*ListCategoriesOutput, error) {
	cats, err := h.categories.ListCategories(ctx)
	if err != nil {
		return nil, internalError(ctx, "listing categories failed", err)
	}
	if cats == nil {
		cats = []domain.Category{}
	}

	resp := &ListCategoriesOutput{}
	resp.Body.Categories = cats
	return resp, nil
}

// RegisterCategoryRoutes registers category endpoints with the Huma API.
func RegisterCategoryRoutes(api huma.API, h *CategoriesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"categories"},
	}, h.ListCategories)
}
