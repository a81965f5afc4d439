package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/middleware"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageIndex  = "index.html"
	pagePost   = "post.html"
	pageEditor = "editor.html"
	pageLogin  = "login.html"
	pageSignup = "signup.html"
	pageError  = "error.html"
)

// view is the data every page template receives.
type view struct {
	Blog    string
	Title   string
	Year    int
	User    *domain.User
	Error   string
	Message string
	Page    any
}

// renderer holds one template set per page, each sharing the layout.
type renderer struct {
	pages map[string]*template.Template
	blog  string
	now   func() time.Time
}

func newRenderer(blog string, now func() time.Time) (*renderer, error) {
	r := &renderer{
		pages: make(map[string]*template.Template),
		blog:  blog,
		now:   now,
	}

	for _, page := range []string{pageIndex, pagePost, pageEditor, pageLogin, pageSignup, pageError} {
		t, err := template.New(page).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		r.pages[page] = t.Lookup("layout")
	}

	return r, nil
}

// component returns the page as a templ component.
func (r *renderer) component(page string, v *view) (templ.Component, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	return templ.FromGoHTML(t, v), nil
}

// base returns the layout data for a page. Flash values come from the
// error and message query parameters so redirects can carry them.
func (r *renderer) base(c echo.Context, title string, data any) *view {
	return &view{
		Blog:    r.blog,
		Title:   title,
		Year:    r.now().Year(),
		User:    middleware.CurrentUser(c),
		Error:   c.QueryParam("error"),
		Message: c.QueryParam("message"),
		Page:    data,
	}
}

// render writes page with status.
func (r *renderer) render(c echo.Context, status int, page, title string, data any) error {
	return r.write(c, status, page, r.base(c, title, data))
}

func (r *renderer) write(c echo.Context, status int, page string, v *view) error {
	comp, err := r.component(page, v)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := comp.Render(c.Request().Context(), &buf); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// safeURL returns raw as a URL attribute value, replacing anything templ
// considers unsafe (javascript:, data:, ...) with an inert URL.
func safeURL(raw string) template.URL {
	if raw == "" {
		return ""
	}
	//nolint:gosec // sanitised by templ.URL
	return template.URL(string(templ.URL(raw)))
}

type errorView struct {
	Status  int
	Message string
}

// renderError writes the error page. Used by the HTTP error handler.
func (r *renderer) renderError(c echo.Context, status int, msg string) error {
	v := r.base(c, http.StatusText(status), errorView{Status: status, Message: msg})
	v.Error, v.Message = "", ""
	return r.write(c, status, pageError, v)
}
