package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/listing"
	"github.com/donaldgifford/devlog/internal/metrics"
	"github.com/donaldgifford/devlog/pkg/markdown"
	domain "github.com/donaldgifford/devlog/pkg/types"
)

const excerptLength = 160

type indexView struct {
	Category   string
	Query      string
	Categories []categoryLink
	Total      int
	Cards      []card
	Pager      *pagerView
}

type categoryLink struct {
	Label  string
	URL    string
	Active bool
}

type card struct {
	ID        string
	URL       string
	Title     string
	Category  string
	Thumbnail template.URL
	CreatedAt string
	Age       string
	Excerpt   string
}

type pagerView struct {
	Current int
	Total   int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
}

// Index renders the post listing for the category, q and page query
// parameters.
func (h *Handler) Index(c echo.Context) error {
	req, err := h.builder.Parse(c.QueryParam("category"), c.QueryParam("q"), c.QueryParam("page"))
	if err != nil {
		if errors.Is(err, listing.ErrInvalidPageNumber) {
			return echo.NewHTTPError(http.StatusBadRequest, "That page number is not valid.")
		}
		return err
	}

	ctx := c.Request().Context()

	res, err := h.builder.Fetch(ctx, h.store, req)
	if err != nil {
		h.log.Error("listing posts", "error", err, "category", req.Category.String(), "page", req.Page)
		res = listing.NewPageResult(nil, 0, req)
	}
	metrics.ObserveListing(req.Filtered(), res.TotalCount, err)

	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		h.log.Warn("listing categories", "error", err)
	}

	v := indexView{
		Category:   req.Category.Name(),
		Query:      req.Query,
		Categories: categoryLinks(cats, req),
		Total:      res.TotalCount,
		Cards:      h.cards(res.Items),
	}
	if res.PaginationVisible {
		v.Pager = newPagerView(req, res.Pager())
	}

	return h.pages.render(c, http.StatusOK, pageIndex, "", v)
}

func categoryLinks(cats []domain.Category, req listing.Request) []categoryLink {
	links := make([]categoryLink, 0, len(cats)+1)
	links = append(links, categoryLink{
		Label:  "All",
		URL:    categoryURL(listing.AllCategories, req.Query),
		Active: req.Category.IsAll(),
	})
	for _, cat := range cats {
		links = append(links, categoryLink{
			Label:  cat.Name,
			URL:    categoryURL(listing.Named(cat.Name), req.Query),
			Active: !req.Category.IsAll() && req.Category.Name() == cat.Name,
		})
	}
	return links
}

func (h *Handler) cards(posts []domain.Post) []card {
	now := h.now()
	out := make([]card, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		out = append(out, card{
			ID:        p.ID,
			URL:       postURL(p.ID),
			Title:     p.Title,
			Category:  p.Category,
			Thumbnail: safeURL(strings.TrimSpace(p.Thumbnail())),
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
			Age:       timeAgo(p.CreatedAt, now),
			Excerpt:   markdown.Excerpt(p.Content, excerptLength),
		})
	}
	return out
}

func newPagerView(req listing.Request, p listing.Pager) *pagerView {
	return &pagerView{
		Current: p.Current,
		Total:   p.Total,
		HasPrev: p.HasPrev,
		HasNext: p.HasNext,
		PrevURL: pageURL(req, p.Prev),
		NextURL: pageURL(req, p.Next),
	}
}
