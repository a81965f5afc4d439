package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/metrics"
	"github.com/donaldgifford/devlog/internal/store"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// WriteForm shows the editor, restoring the author's saved draft.
func (h *Handler) WriteForm(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)

	var form editorForm
	draft, err := h.store.GetDraft(ctx, user.ID)
	switch {
	case err == nil:
		form = formFromDraft(draft)
	case errors.Is(err, store.ErrNotFound):
	default:
		h.log.Warn("loading draft", "user_id", user.ID, "error", err)
	}

	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	return h.renderEditor(c, http.StatusOK, newPostEditor(form, cats), "")
}

// Publish creates a post from the editor and discards the draft.
func (h *Handler) Publish(c echo.Context) error {
	ctx := c.Request().Context()
	user := middleware.CurrentUser(c)
	form := readEditorForm(c)

	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	if msg := form.validate(cats); msg != "" {
		return h.renderEditor(c, http.StatusUnprocessableEntity, newPostEditor(form, cats), msg)
	}

	post := &domain.Post{
		Title:        form.Title,
		Content:      form.Content,
		Category:     form.Category,
		ThumbnailURL: form.thumbnail(),
		AuthorID:     user.ID,
	}
	if err := h.store.CreatePost(ctx, post); err != nil {
		return err
	}

	if err := h.store.DeleteDraft(ctx, user.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.log.Warn("discarding draft", "user_id", user.ID, "error", err)
	}

	metrics.PostsPublishedTotal.Inc()
	h.log.Info("post published", "post_id", post.ID, "category", post.Category, "user_id", user.ID)

	return c.Redirect(http.StatusSeeOther, "/")
}

// SaveDraft stores the editor content as the author's draft.
func (h *Handler) SaveDraft(c echo.Context) error {
	user := middleware.CurrentUser(c)
	form := readEditorForm(c)

	draft := &domain.Draft{
		AuthorID:     user.ID,
		Title:        form.Title,
		Content:      form.Content,
		Category:     form.Category,
		ThumbnailURL: form.thumbnail(),
	}
	if err := h.store.SaveDraft(c.Request().Context(), draft); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, flashURL("/write", "message", "Draft saved."))
}

// FormatDraft applies a toolbar action to the selection and redisplays
// the editor.
func (h *Handler) FormatDraft(c echo.Context) error {
	form := readEditorForm(c)

	cats, err := h.store.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	if err := form.format(); err != nil {
		return h.renderEditor(c, http.StatusBadRequest, newPostEditor(form, cats), "Unknown formatting action.")
	}
	return h.renderEditor(c, http.StatusOK, newPostEditor(form, cats), "")
}

// PreviewDraft redisplays the editor next to the rendered Markdown.
func (h *Handler) PreviewDraft(c echo.Context) error {
	form := readEditorForm(c)

	cats, err := h.store.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	v := newPostEditor(form, cats)
	if v.Preview, err = h.preview(form.Content); err != nil {
		return err
	}
	return h.renderEditor(c, http.StatusOK, v, "")
}
