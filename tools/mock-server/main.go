// Package main implements a mock DevLog API server for local development.
// It serves the real JSON API handlers over an in-memory post set loaded
// from a JSON fixture, so devlogctl can be exercised without PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/handlers"
	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/listing"
	"github.com/donaldgifford/devlog/internal/store"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

type fixture struct {
	Categories []domain.Category `json:"categories"`
	Posts      []domain.Post     `json:"posts"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/posts.json", "path to posts fixture")
	pageSize := flag.Int("page-size", 6, "posts per listing page")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "posts", len(fx.Posts), "categories", len(fx.Categories))

	e := newServer(fx, *pageSize, logger)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock devlog server", "addr", addr)
	if err := e.Start(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func newServer(fx *fixture, pageSize int, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLog(logger))

	mem := newMemoryPosts(fx)
	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(mem))

	api := humaecho.New(e, huma.DefaultConfig("DevLog Mock API", "mock"))
	handlers.RegisterPostRoutes(api, handlers.NewPostsHandler(mem, listing.NewBuilder(pageSize)))
	handlers.RegisterCategoryRoutes(api, handlers.NewCategoriesHandler(mem))
	handlers.RegisterEditorRoutes(api)

	return e
}

// memoryPosts answers listing descriptors from a fixed post slice.
type memoryPosts struct {
	posts      []domain.Post
	categories []domain.Category
}

func newMemoryPosts(fx *fixture) *memoryPosts {
	m := &memoryPosts{
		posts:      slices.Clone(fx.Posts),
		categories: slices.Clone(fx.Categories),
	}
	slices.SortFunc(m.categories, func(a, b domain.Category) int { return a.Position - b.Position })
	return m
}

func (*memoryPosts) Ping(context.Context) error { return nil }

func (m *memoryPosts) ListCategories(context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

func (m *memoryPosts) GetPost(_ context.Context, id string) (*domain.Post, error) {
	for i := range m.posts {
		if m.posts[i].ID == id {
			p := m.posts[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memoryPosts) ListPosts(_ context.Context, d *listing.Descriptor) ([]domain.Post, int, error) {
	var matched []domain.Post
	for _, p := range m.posts {
		if matches(&p, d) {
			matched = append(matched, p)
		}
	}

	slices.SortStableFunc(matched, func(a, b domain.Post) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if d.Sort.Descending {
			return -c
		}
		return c
	})

	total := len(matched)
	offset := max(d.Offset, 0)
	if offset >= total {
		return []domain.Post{}, total, nil
	}
	end := min(offset+d.Limit, total)
	return matched[offset:end], total, nil
}

func matches(p *domain.Post, d *listing.Descriptor) bool {
	for _, f := range d.Filters {
		if f.Field == listing.FieldCategory && p.Category != f.Value {
			return false
		}
	}
	if d.Text != nil {
		needle := strings.ToLower(strings.Trim(d.Text.Pattern, "%"))
		if !strings.Contains(strings.ToLower(p.Title), needle) {
			return false
		}
	}
	return true
}
