// Package store defines the datastore abstraction for DevLog.
// Handlers and services depend on the Store interface, never on concrete
// implementations, so they can be tested against mocks.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/donaldgifford/devlog/internal/listing"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines all data access operations for DevLog.
type Store interface {
	// Posts
	ListPosts(ctx context.Context, d *listing.Descriptor) ([]domain.Post, int, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	CreatePost(ctx context.Context, p *domain.Post) error
	UpdatePost(ctx context.Context, p *domain.Post) error
	DeletePost(ctx context.Context, id string) error

	// Categories
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)

	// Drafts
	SaveDraft(ctx context.Context, d *domain.Draft) error
	GetDraft(ctx context.Context, authorID string) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, authorID string) error
	PurgeDrafts(ctx context.Context, olderThan time.Duration) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

var _ listing.Executor = (Store)(nil)
