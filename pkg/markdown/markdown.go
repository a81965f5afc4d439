// Package markdown renders post bodies from Markdown to sanitised HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Placeholder is rendered in place of an empty document.
const Placeholder = "*Nothing here yet.*"

// Renderer converts GitHub-flavoured Markdown to HTML safe for embedding in
// a page. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a Renderer with GFM extensions and a UGC sanitising
// policy that keeps fenced-code language classes.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").
		Matching(regexp.MustCompile(`^language-[\w+-]+$`)).
		OnElements("code")
	policy.RequireNoFollowOnLinks(true)

	return &Renderer{md: md, policy: policy}
}

// Render converts src to sanitised HTML. Whitespace-only input renders the
// placeholder.
func (r *Renderer) Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		src = Placeholder
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	//nolint:gosec // output sanitised by bluemonday
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

var defaultRenderer = NewRenderer()

// Render converts src using the package default Renderer.
func Render(src string) (template.HTML, error) {
	return defaultRenderer.Render(src)
}

// Excerpt returns the first n runes of src with Markdown punctuation
// stripped, for card previews.
func Excerpt(src string, n int) string {
	plain := excerptStrip.Replace(src)
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) <= n {
		return plain
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

var excerptStrip = strings.NewReplacer(
	"#", "", "*", "", "_", "", "`", "", ">", "", "![", "", "[", "", "]", " ",
)
