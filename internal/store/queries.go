package store

// SQL query constants organized by entity.
// Static SQL lives here; listing SQL is assembled in query.go.

// Post queries.
const (
	queryGetPostByID = `
		SELECT id, title, content, category, thumbnail_url,
			author_id, created_at, updated_at
		FROM posts
		WHERE id = $1`

	queryInsertPost = `
		INSERT INTO posts (
			title, content, category, thumbnail_url, author_id, created_at, updated_at
		) VALUES (
			@title, @content, @category, @thumbnail_url, @author_id, now(), now()
		)
		RETURNING id, created_at, updated_at`

	queryUpdatePost = `
		UPDATE posts SET
			title = @title,
			content = @content,
			category = @category,
			thumbnail_url = @thumbnail_url,
			updated_at = now()
		WHERE id = @id
		RETURNING updated_at`

	queryDeletePost = `DELETE FROM posts WHERE id = $1`
)

// Category queries.
const (
	queryListCategories = `
		SELECT name, position
		FROM categories
		ORDER BY position, name`
)

// User queries.
const (
	queryInsertUser = `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, now())
		RETURNING id, created_at`

	queryGetUserByEmail = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	queryGetUserByID = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1`
)

// Draft queries.
const (
	queryUpsertDraft = `
		INSERT INTO drafts (author_id, title, content, category, thumbnail_url, updated_at)
		VALUES (@author_id, @title, @content, @category, @thumbnail_url, now())
		ON CONFLICT (author_id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			category = EXCLUDED.category,
			thumbnail_url = EXCLUDED.thumbnail_url,
			updated_at = now()
		RETURNING updated_at`

	queryGetDraft = `
		SELECT author_id, title, content, category, thumbnail_url, updated_at
		FROM drafts
		WHERE author_id = $1`

	queryDeleteDraft = `DELETE FROM drafts WHERE author_id = $1`

	queryPurgeDrafts = `DELETE FROM drafts WHERE updated_at < now() - make_interval(secs => $1)`
)
