// Package web serves the server-rendered blog pages: the post listing,
// post detail, the Markdown editor and the account forms.
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/auth"
	"github.com/donaldgifford/devlog/internal/listing"
	"github.com/donaldgifford/devlog/internal/store"
	"github.com/donaldgifford/devlog/pkg/markdown"
)

// Config wires a Handler to its collaborators.
type Config struct {
	Blog         string
	Store        store.Store
	Builder      *listing.Builder
	Auth         *auth.Service
	Sessions     *auth.Sessions
	LoginLimiter *middleware.ClientLimiter
	Markdown     *markdown.Renderer
	Log          *slog.Logger
	Now          func() time.Time
}

// Handler serves the HTML pages.
type Handler struct {
	store    store.Store
	builder  *listing.Builder
	auth     *auth.Service
	sessions *auth.Sessions
	limiter  *middleware.ClientLimiter
	md       *markdown.Renderer
	log      *slog.Logger
	now      func() time.Time
	pages    *renderer
}

// New creates a Handler. Store, Builder, Auth and Sessions are required.
func New(cfg Config) (*Handler, error) {
	if cfg.Store == nil || cfg.Builder == nil || cfg.Auth == nil || cfg.Sessions == nil {
		return nil, errors.New("web: store, builder, auth and sessions are required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.DiscardHandler)
	}
	if cfg.Markdown == nil {
		cfg.Markdown = markdown.NewRenderer()
	}
	if cfg.LoginLimiter == nil {
		cfg.LoginLimiter = middleware.NewClientLimiter(10, 5)
	}

	pages, err := newRenderer(cfg.Blog, cfg.Now)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return &Handler{
		store:    cfg.Store,
		builder:  cfg.Builder,
		auth:     cfg.Auth,
		sessions: cfg.Sessions,
		limiter:  cfg.LoginLimiter,
		md:       cfg.Markdown,
		log:      cfg.Log,
		now:      cfg.Now,
		pages:    pages,
	}, nil
}

// Register mounts the page routes on e. Route-level middleware is used
// rather than groups so unknown paths still reach the 404 page.
func (h *Handler) Register(e *echo.Echo) {
	session := middleware.LoadUser(h.sessions, h.auth, h.log)
	signedIn := middleware.RequireUser("/login")
	throttle := middleware.RateLimit(h.limiter, h.tooManyAttempts, http.MethodPost)

	e.GET("/", h.Index, session)
	e.GET("/posts/:id", h.ShowPost, session)

	e.GET("/write", h.WriteForm, session, signedIn)
	e.POST("/write", h.Publish, session, signedIn)
	e.POST("/write/draft", h.SaveDraft, session, signedIn)
	e.POST("/write/format", h.FormatDraft, session, signedIn)
	e.POST("/write/preview", h.PreviewDraft, session, signedIn)

	e.GET("/posts/:id/edit", h.EditForm, session, signedIn)
	e.POST("/posts/:id/edit", h.UpdatePost, session, signedIn)
	e.POST("/posts/:id/delete", h.DeletePost, session, signedIn)

	e.GET("/login", h.LoginForm, session)
	e.POST("/login", h.Login, throttle)
	e.GET("/signup", h.SignupForm, session)
	e.POST("/signup", h.Signup, throttle)
	e.POST("/logout", h.Logout)
}

// ErrorHandler renders errors returned by page handlers as an HTML error
// page, or as JSON for API callers.
func (h *Handler) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Something went wrong on our side."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
			msg = m
		}
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"request_id", middleware.RequestID(c),
		)
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(status)
	case middleware.WantsJSON(c):
		werr = c.JSON(status, map[string]string{"error": msg})
	default:
		werr = h.pages.renderError(c, status, msg)
	}
	if werr != nil {
		h.log.Error("writing error response", "error", werr)
	}
}
