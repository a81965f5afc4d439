package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/devlog/internal/api/handlers"
)

func TestPreviewMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantBody []string
		notBody  []string
	}{
		{
			name:     "renders emphasis",
			body:     `{"content":"**hi**"}`,
			wantBody: []string{`<strong>hi</strong>`},
		},
		{
			name:     "empty content renders placeholder",
			body:     `{"content":""}`,
			wantBody: []string{"Nothing here yet."},
		},
		{
			name:    "scripts removed",
			body:    `{"content":"<script>alert(1)</script>"}`,
			notBody: []string{`<script`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterEditorRoutes(api)

			resp := api.Post("/api/v1/markdown/preview", strings.NewReader(tt.body))
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			var got struct {
				HTML string `json:"html"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))

			for _, w := range tt.wantBody {
				assert.Contains(t, got.HTML, w)
			}
			for _, n := range tt.notBody {
				assert.NotContains(t, got.HTML, n)
			}
		})
	}
}

type formatResult struct {
	Content string `json:"content"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       *formatResult
	}{
		{
			name:       "bold selection",
			body:       `{"content":"make this bold","start":5,"end":9,"action":"bold"}`,
			wantStatus: http.StatusOK,
			want:       &formatResult{Content: "make **this** bold", Start: 7, End: 11},
		},
		{
			name:       "link at caret",
			body:       `{"content":"","start":0,"end":0,"action":"link"}`,
			wantStatus: http.StatusOK,
			want:       &formatResult{Content: "[](url)", Start: 1, End: 1},
		},
		{
			name:       "unknown action rejected",
			body:       `{"content":"x","start":0,"end":1,"action":"strike"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterEditorRoutes(api)

			resp := api.Post("/api/v1/editor/format", strings.NewReader(tt.body))
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.want == nil {
				return
			}

			var got formatResult
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, *tt.want, got)
		})
	}
}
