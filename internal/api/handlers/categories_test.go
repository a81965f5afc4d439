package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/devlog/internal/api/handlers"
	storeMocks "github.com/donaldgifford/devlog/internal/store/mocks"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

func TestCategoriesHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cats       []domain.Category
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "in display order",
			cats:       []domain.Category{{Name: "React", Position: 1}, {Name: "Git", Position: 5}},
			wantStatus: http.StatusOK,
			wantBody:   `"categories":[{"name":"React","position":1},{"name":"Git","position":5}]`,
		},
		{
			name:       "empty list is an array",
			wantStatus: http.StatusOK,
			wantBody:   `"categories":[]`,
		},
		{
			name:       "store error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "listing categories failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().ListCategories(mock.Anything).Return(tt.cats, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterCategoryRoutes(api, handlers.NewCategoriesHandler(ms))

			resp := api.Get("/api/v1/categories")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.NotContains(t, resp.Body.String(), assert.AnError.Error(), "store error text must not leak")
		})
	}
}
