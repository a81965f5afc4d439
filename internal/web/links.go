package web

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/devlog/internal/listing"
)

// listingURL returns the index URL for category, q and page. Defaults are
// left out so the canonical first page is plain "/".
func listingURL(category listing.Category, q string, page int) string {
	v := url.Values{}
	if !category.IsAll() {
		v.Set("category", category.Name())
	}
	if q != "" {
		v.Set("q", q)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// categoryURL switches category, keeping the search and resetting the page.
func categoryURL(category listing.Category, q string) string {
	return listingURL(category, q, 1)
}

// pageURL moves to page, keeping category and search.
func pageURL(req listing.Request, page int) string {
	return listingURL(req.Category, req.Query, page)
}

func postURL(id string) string {
	return "/posts/" + url.PathEscape(id)
}

// flashURL appends an error or message parameter to path.
func flashURL(path, key, text string) string {
	v := url.Values{}
	v.Set(key, text)
	return path + "?" + v.Encode()
}

// safeNext returns next when it is a local path, "/" otherwise.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return "/"
	}
	return next
}

// timeAgo formats t relative to now: minutes under an hour, hours under a
// day, otherwise the calendar date.
func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch minutes := int(d.Minutes()); {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case minutes < 24*60:
		return plural(minutes/60, "hour") + " ago"
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// readingMinutes estimates reading time at 200 words per minute.
func readingMinutes(words int) int {
	return max(1, (words+199)/200)
}
