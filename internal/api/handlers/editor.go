package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/devlog/pkg/editor"
	"github.com/donaldgifford/devlog/pkg/markdown"
)

// MarkdownPreviewInput is a document to render.
type MarkdownPreviewInput struct {
	Body struct {
		Content string `json:"content" doc:"Markdown source" maxLength:"200000"`
	}
}

// MarkdownPreviewOutput is the sanitised HTML rendering.
type MarkdownPreviewOutput struct {
	Body struct {
		HTML string `json:"html"`
	}
}

// FormatInput applies a toolbar action to a selection.
type FormatInput struct {
	Body struct {
		Content string `json:"content" doc:"Editor text"        maxLength:"200000"`
		Start   int    `json:"start"   doc:"Selection start (runes)"`
		End     int    `json:"end"     doc:"Selection end (runes)"`
		Action  string `json:"action"  doc:"Toolbar action"     enum:"bold,italic,code,link,image"`
	}
}

// FormatOutput is the edited text and the selection to restore.
type FormatOutput struct {
	Body struct {
		Content string `json:"content"`
		Start   int    `json:"start"`
		End     int    `json:"end"`
	}
}

// PreviewMarkdown renders Markdown the way a published post would be.
func PreviewMarkdown(
	ctx context.Context,
	input *MarkdownPreviewInput,
) (*MarkdownPreviewOutput, error) {
	html, err := markdown.Render(input.Body.Content)
	if err != nil {
		return nil, internalError(ctx, "rendering markdown failed", err)
	}

	resp := &MarkdownPreviewOutput{}
	resp.Body.HTML = string(html)
	return resp, nil
}

// FormatText wraps the selection in the markers for the requested action.
func FormatText(
	ctx context.Context,
	input *FormatInput,
) (*FormatOutput, error) {
	sel := editor.Selection{Start: input.Body.Start, End: input.Body.End}

	out, next, err := editor.Apply(editor.Action(input.Body.Action), input.Body.Content, sel)
	if err != nil {
		if errors.Is(err, editor.ErrUnknownAction) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, internalError(ctx, "formatting failed", err)
	}

	resp := &FormatOutput{}
	resp.Body.Content = out
	resp.Body.Start = next.Start
	resp.Body.End = next.End
	return resp, nil
}

// RegisterEditorRoutes registers the preview and toolbar endpoints.
func RegisterEditorRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "preview-markdown",
		Method:      http.MethodPost,
		Path:        "/api/v1/markdown/preview",
		Summary:     "Render markdown",
		Description: "Renders markdown to sanitised HTML. Empty input renders a placeholder.",
		Tags:        []string{"editor"},
	}, PreviewMarkdown)

	huma.Register(api, huma.Operation{
		OperationID: "format-text",
		Method:      http.MethodPost,
		Path:        "/api/v1/editor/format",
		Summary:     "Apply a toolbar action",
		Description: "Wraps the selected range in formatting markers and returns the new selection.",
		Tags:        []string{"editor"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, FormatText)
}
