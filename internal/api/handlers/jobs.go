package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/devlog/internal/jobs"
)

// JobRunner exposes the maintenance scheduler to the API.
type JobRunner interface {
	Jobs() []jobs.Status
	PurgeDrafts(ctx context.Context) (int, error)
}

// JobsHandler handles scheduler inspection and manual trigger requests.
type JobsHandler struct {
	runner JobRunner
}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler(r JobRunner) *JobsHandler {
	return &JobsHandler{runner: r}
}

// ListJobsOutput is the response body for listing scheduled jobs.
type ListJobsOutput struct {
	Body struct {
		Jobs []jobs.Status `json:"jobs"`
	}
}

// PurgeDraftsOutput is the response body for a manual draft purge.
type PurgeDraftsOutput struct {
	Body struct {
		Purged int `json:"purged" example:"3" doc:"Number of stale drafts removed"`
	}
}

// ListJobs returns the schedule of every maintenance job.
func (h *JobsHandler) ListJobs(_ context.Context, _ *struct{}) (*ListJobsOutput, error) {
	resp := &ListJobsOutput{}
	resp.Body.Jobs = h.runner.Jobs()
	if resp.Body.Jobs == nil {
		resp.Body.Jobs = []jobs.Status{}
	}
	return resp, nil
}

// PurgeDrafts removes stale drafts now instead of waiting for the schedule.
func (h *JobsHandler) PurgeDrafts(ctx context.Context, _ *struct{}) (*PurgeDraftsOutput, error) {
	n, err := h.runner.PurgeDrafts(ctx)
	if err != nil {
		return nil, internalError(ctx, "draft purge failed", err)
	}

	resp := &PurgeDraftsOutput{}
	resp.Body.Purged = n
	return resp, nil
}

// RegisterJobRoutes registers scheduler job endpoints with the Huma API.
func RegisterJobRoutes(api huma.API, h *JobsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "List scheduled jobs",
		Description: "Returns each maintenance job with its schedule and next and previous run times.",
		Tags:        []string{"scheduler"},
	}, h.ListJobs)

	huma.Register(api, huma.Operation{
		OperationID: "purge-drafts",
		Method:      http.MethodPost,
		Path:        "/api/v1/jobs/draft_purge",
		Summary:     "Purge stale drafts",
		Description: "Deletes drafts older than the configured TTL immediately.",
		Tags:        []string{"scheduler"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.PurgeDrafts)
}
