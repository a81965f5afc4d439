// Package domain defines the core business types for the DevLog blog.
package domain

import "time"

// Post is a published blog post. Content is stored as markdown.
type Post struct {
	ID           string    `json:"id"                      db:"id"`
	Title        string    `json:"title"                   db:"title"`
	Content      string    `json:"content"                 db:"content"`
	Category     string    `json:"category"                db:"category"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	AuthorID     string    `json:"author_id"               db:"author_id"`
	CreatedAt    time.Time `json:"created_at"              db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"              db:"updated_at"`
}

// Thumbnail returns the thumbnail URL or "" when none is set.
func (p *Post) Thumbnail() string {
	if p.ThumbnailURL == nil {
		return ""
	}
	return *p.ThumbnailURL
}

// IsAuthoredBy reports whether userID wrote the post.
// An empty userID (anonymous visitor) never matches.
func (p *Post) IsAuthoredBy(userID string) bool {
	return userID != "" && p.AuthorID == userID
}

// User is a registered author or reader.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Category is a post category shown in the category bar and editor.
type Category struct {
	Name     string `json:"name"     db:"name"`
	Position int    `json:"position" db:"position"`
}

// Draft is an author's single unpublished post, saved from the editor.
type Draft struct {
	AuthorID     string    `json:"author_id"               db:"author_id"`
	Title        string    `json:"title"                   db:"title"`
	Content      string    `json:"content"                 db:"content"`
	Category     string    `json:"category"                db:"category"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	UpdatedAt    time.Time `json:"updated_at"              db:"updated_at"`
}
