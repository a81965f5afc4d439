package web

import (
	"html/template"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/pkg/editor"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

// Form operations posted by the editor buttons.
const (
	opPublish = "publish"
	opPreview = "preview"
)

// editorForm is the editor state posted back on every button press.
type editorForm struct {
	Title        string
	Content      string
	Category     string
	ThumbnailURL string
	Selection    editor.Selection
	Op           string
}

// readEditorForm reads the posted editor. The textarea selection arrives in
// UTF-16 units over LF text, so content is normalised before converting it.
func readEditorForm(c echo.Context) editorForm {
	start, _ := strconv.Atoi(c.FormValue("sel_start"))
	end, _ := strconv.Atoi(c.FormValue("sel_end"))
	content := editor.NormalizeNewlines(c.FormValue("content"))
	return editorForm{
		Title:        c.FormValue("title"),
		Content:      content,
		Category:     c.FormValue("category"),
		ThumbnailURL: strings.TrimSpace(c.FormValue("thumbnail_url")),
		Selection:    editor.FromUTF16(content, editor.Selection{Start: start, End: end}),
		Op:           c.FormValue("op"),
	}
}

// validate returns a user-facing message for the first problem found.
func (f *editorForm) validate(cats []domain.Category) string {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" {
		return "Please enter a title and some content."
	}
	if !slices.ContainsFunc(cats, func(c domain.Category) bool { return c.Name == f.Category }) {
		return "Please choose a category."
	}
	if f.ThumbnailURL != "" && !httpURL(f.ThumbnailURL) {
		return "Thumbnail URL must be an http or https link."
	}
	return ""
}

// thumbnail returns the thumbnail as stored on posts and drafts.
func (f *editorForm) thumbnail() *string {
	if f.ThumbnailURL == "" {
		return nil
	}
	s := f.ThumbnailURL
	return &s
}

// format applies the toolbar action named by Op to the content.
func (f *editorForm) format() error {
	action, err := editor.ParseAction(f.Op)
	if err != nil {
		return err
	}
	content, sel, err := editor.Apply(action, f.Content, f.Selection)
	if err != nil {
		return err
	}
	f.Content, f.Selection = content, sel
	return nil
}

func httpURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

type editorView struct {
	Heading      string
	SubmitLabel  string
	SubmitURL    string
	PreviewURL   string
	FormatURL    string
	DraftURL     string
	Title        string
	Content      string
	Category     string
	ThumbnailURL string
	Categories   []domain.Category
	Toolbar      []editor.Action
	Selection    editor.Selection // UTF-16 units, as the textarea counts them
	Preview      template.HTML
}

// newPostEditor is the editor for writing a new post.
func newPostEditor(f editorForm, cats []domain.Category) editorView {
	return editorView{
		Heading:      "New post",
		SubmitLabel:  "Publish",
		SubmitURL:    "/write",
		PreviewURL:   "/write/preview",
		FormatURL:    "/write/format",
		DraftURL:     "/write/draft",
		Title:        f.Title,
		Content:      f.Content,
		Category:     defaultCategory(f.Category, cats),
		ThumbnailURL: f.ThumbnailURL,
		Categories:   cats,
		Toolbar:      editor.Actions(),
		Selection:    editor.ToUTF16(f.Content, f.Selection),
	}
}

// editPostEditor is the editor for changing post id. Every button posts
// back to the edit URL and is told apart by op.
func editPostEditor(id string, f editorForm, cats []domain.Category) editorView {
	target := postURL(id) + "/edit"
	return editorView{
		Heading:      "Edit post",
		SubmitLabel:  "Save",
		SubmitURL:    target,
		PreviewURL:   target,
		FormatURL:    target,
		Title:        f.Title,
		Content:      f.Content,
		Category:     defaultCategory(f.Category, cats),
		ThumbnailURL: f.ThumbnailURL,
		Categories:   cats,
		Toolbar:      editor.Actions(),
		Selection:    editor.ToUTF16(f.Content, f.Selection),
	}
}

func defaultCategory(current string, cats []domain.Category) string {
	if current != "" || len(cats) == 0 {
		return current
	}
	return cats[0].Name
}

func formFromPost(p *domain.Post) editorForm {
	return editorForm{
		Title:        p.Title,
		Content:      p.Content,
		Category:     p.Category,
		ThumbnailURL: p.Thumbnail(),
	}
}

func formFromDraft(d *domain.Draft) editorForm {
	f := editorForm{
		Title:    d.Title,
		Content:  d.Content,
		Category: d.Category,
	}
	if d.ThumbnailURL != nil {
		f.ThumbnailURL = *d.ThumbnailURL
	}
	return f
}

// renderEditor writes the editor page. A non-empty errMsg replaces any
// flash message carried in the URL.
func (h *Handler) renderEditor(c echo.Context, status int, v editorView, errMsg string) error {
	page := h.pages.base(c, v.Heading, v)
	if errMsg != "" {
		page.Error, page.Message = errMsg, ""
	}
	return h.pages.write(c, status, pageEditor, page)
}

// preview renders the content as the published post would show it.
func (h *Handler) preview(content string) (template.HTML, error) {
	return h.md.Render(content)
}
