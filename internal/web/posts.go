package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/store"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

type postView struct {
	Post        *domain.Post
	IsAuthor    bool
	EditURL     string
	DeleteURL   string
	CreatedAt   string
	Date        string
	ReadingTime int
	Thumbnail   template.URL
	Body        template.HTML
}

// loadPost fetches post id, mapping a missing post to a 404.
func (h *Handler) loadPost(c echo.Context) (*domain.Post, error) {
	post, err := h.store.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "That post does not exist.")
		}
		return nil, err
	}
	return post, nil
}

// loadOwnPost is loadPost restricted to the signed-in author.
func (h *Handler) loadOwnPost(c echo.Context) (*domain.Post, error) {
	post, err := h.loadPost(c)
	if err != nil {
		return nil, err
	}
	if user := middleware.CurrentUser(c); user == nil || !post.IsAuthoredBy(user.ID) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Only the author can change this post.")
	}
	return post, nil
}

// ShowPost renders a single post.
func (h *Handler) ShowPost(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	body, err := h.md.Render(post.Content)
	if err != nil {
		return err
	}

	v := postView{
		Post:        post,
		EditURL:     postURL(post.ID) + "/edit",
		DeleteURL:   postURL(post.ID) + "/delete",
		CreatedAt:   post.CreatedAt.UTC().Format(time.RFC3339),
		Date:        post.CreatedAt.Format("January 2, 2006"),
		ReadingTime: readingMinutes(len(strings.Fields(post.Content))),
		Thumbnail:   safeURL(strings.TrimSpace(post.Thumbnail())),
		Body:        body,
	}
	if user := middleware.CurrentUser(c); user != nil {
		v.IsAuthor = post.IsAuthoredBy(user.ID)
	}

	return h.pages.render(c, http.StatusOK, pagePost, post.Title, v)
}

// EditForm shows the editor filled with an existing post.
func (h *Handler) EditForm(c echo.Context) error {
	post, err := h.loadOwnPost(c)
	if err != nil {
		return err
	}

	cats, err := h.store.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return h.renderEditor(c, http.StatusOK, editPostEditor(post.ID, formFromPost(post), cats), "")
}

// UpdatePost handles every editor button on the edit page: preview,
// toolbar formatting and save.
func (h *Handler) UpdatePost(c echo.Context) error {
	post, err := h.loadOwnPost(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	form := readEditorForm(c)

	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	v := editPostEditor(post.ID, form, cats)

	switch form.Op {
	case opPreview:
		if v.Preview, err = h.preview(form.Content); err != nil {
			return err
		}
		return h.renderEditor(c, http.StatusOK, v, "")
	case "", opPublish:
	default:
		if err := form.format(); err != nil {
			return h.renderEditor(c, http.StatusBadRequest, v, "Unknown formatting action.")
		}
		return h.renderEditor(c, http.StatusOK, editPostEditor(post.ID, form, cats), "")
	}

	if msg := form.validate(cats); msg != "" {
		return h.renderEditor(c, http.StatusUnprocessableEntity, v, msg)
	}

	post.Title = form.Title
	post.Content = form.Content
	post.Category = form.Category
	post.ThumbnailURL = form.thumbnail()
	if err := h.store.UpdatePost(ctx, post); err != nil {
		return err
	}

	h.log.Info("post updated", "post_id", post.ID)
	return c.Redirect(http.StatusSeeOther, flashURL(postURL(post.ID), "message", "Post updated."))
}

// DeletePost removes a post and returns to the listing.
func (h *Handler) DeletePost(c echo.Context) error {
	post, err := h.loadOwnPost(c)
	if err != nil {
		return err
	}

	if err := h.store.DeletePost(c.Request().Context(), post.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "That post does not exist.")
		}
		return err
	}

	h.log.Info("post deleted", "post_id", post.ID)
	return c.Redirect(http.StatusSeeOther, flashURL("/", "message", "Post deleted."))
}
