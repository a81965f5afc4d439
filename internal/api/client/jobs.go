package client

import (
	"context"

	"github.com/donaldgifford/devlog/internal/jobs"
)

// ListJobs returns the server's scheduled maintenance jobs.
func (c *Client) ListJobs(ctx context.Context) ([]jobs.Status, error) {
	var resp struct {
		Jobs []jobs.Status `json:"jobs"`
	}
	if err := c.get(ctx, "/api/v1/jobs", &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// PurgeDrafts asks the server to remove stale drafts now and returns how
// many were deleted.
func (c *Client) PurgeDrafts(ctx context.Context) (int, error) {
	var resp struct {
		Purged int `json:"purged"`
	}
	if err := c.post(ctx, "/api/v1/jobs/"+jobs.DraftPurgeJob, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Purged, nil
}
