package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donaldgifford/devlog/internal/listing"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A poolSize of 0 uses the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize) //nolint:gosec // bounded by config

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ListPosts runs a listing descriptor, returning one page of posts and the
// total number of posts matching its filters.
func (s *PostgresStore) ListPosts(
	ctx context.Context,
	d *listing.Descriptor,
) ([]domain.Post, int, error) {
	dataSQL, countSQL, args := postsSQL(d)

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating posts: %w", err)
	}

	return posts, total, nil
}

// GetPost retrieves a post by its UUID.
func (s *PostgresStore) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	p := &domain.Post{}
	if err := scanPost(s.pool.QueryRow(ctx, queryGetPostByID, id), p); err != nil {
		return nil, notFound(err, "getting post")
	}
	return p, nil
}

// CreatePost inserts a post and fills in its ID and timestamps.
func (s *PostgresStore) CreatePost(ctx context.Context, p *domain.Post) error {
	args := pgx.NamedArgs{
		"title":         p.Title,
		"content":       p.Content,
		"category":      p.Category,
		"thumbnail_url": p.ThumbnailURL,
		"author_id":     p.AuthorID,
	}

	if err := s.pool.QueryRow(ctx, queryInsertPost, args).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// UpdatePost rewrites the editable fields of a post.
func (s *PostgresStore) UpdatePost(ctx context.Context, p *domain.Post) error {
	args := pgx.NamedArgs{
		"id":            p.ID,
		"title":         p.Title,
		"content":       p.Content,
		"category":      p.Category,
		"thumbnail_url": p.ThumbnailURL,
	}

	if err := s.pool.QueryRow(ctx, queryUpdatePost, args).Scan(&p.UpdatedAt); err != nil {
		return notFound(err, "updating post")
	}
	return nil
}

// DeletePost removes a post.
func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeletePost, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting post: %w", ErrNotFound)
	}
	return nil
}

// ListCategories returns all categories in display order.
func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, queryListCategories)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}

	return cats, rows.Err()
}

// CreateUser inserts a user. A duplicate email returns ErrAlreadyExists.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) error {
	err := s.pool.QueryRow(ctx, queryInsertUser, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("inserting user: %w", ErrAlreadyExists)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByEmail looks a user up by their normalized email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByEmail, email)
}

// GetUserByID looks a user up by UUID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, queryGetUserByID, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query, arg string) (*domain.User, error) {
	u := &domain.User{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "getting user")
	}
	return u, nil
}

// SaveDraft creates or replaces the author's draft.
func (s *PostgresStore) SaveDraft(ctx context.Context, d *domain.Draft) error {
	args := pgx.NamedArgs{
		"author_id":     d.AuthorID,
		"title":         d.Title,
		"content":       d.Content,
		"category":      d.Category,
		"thumbnail_url": d.ThumbnailURL,
	}

	if err := s.pool.QueryRow(ctx, queryUpsertDraft, args).Scan(&d.UpdatedAt); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// GetDraft returns the author's draft or ErrNotFound.
func (s *PostgresStore) GetDraft(ctx context.Context, authorID string) (*domain.Draft, error) {
	d := &domain.Draft{}
	err := s.pool.QueryRow(ctx, queryGetDraft, authorID).Scan(
		&d.AuthorID, &d.Title, &d.Content, &d.Category, &d.ThumbnailURL, &d.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "getting draft")
	}
	return d, nil
}

// DeleteDraft removes the author's draft. Missing drafts are not an error.
func (s *PostgresStore) DeleteDraft(ctx context.Context, authorID string) error {
	if _, err := s.pool.Exec(ctx, queryDeleteDraft, authorID); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

// PurgeDrafts deletes drafts untouched for longer than olderThan.
func (s *PostgresStore) PurgeDrafts(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPurgeDrafts, olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("purging drafts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// notFound maps pgx.ErrNoRows, and ids that are not valid UUIDs, to
// ErrNotFound. Everything is wrapped with op.
func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

// scanPost scans the columns of basePostsSelect into p.
func scanPost(row scannable, p *domain.Post) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Category, &p.ThumbnailURL,
		&p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
}
