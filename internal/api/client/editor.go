package client

import "context"

// PreviewMarkdown renders content on the server and returns the HTML.
func (c *Client) PreviewMarkdown(ctx context.Context, content string) (string, error) {
	body := map[string]string{"content": content}

	var resp struct {
		HTML string `json:"html"`
	}
	if err := c.post(ctx, "/api/v1/markdown/preview", body, &resp); err != nil {
		return "", err
	}
	return resp.HTML, nil
}
