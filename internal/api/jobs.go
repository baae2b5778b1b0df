package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jonathan/jobdash/internal/types"
)

// JobsAPI groups the job posting endpoints of the hiring dashboard.
type JobsAPI struct {
	client *Client
}

// NewJobsAPI binds the job endpoints to client.
func NewJobsAPI(client *Client) *JobsAPI {
	return &JobsAPI{client: client}
}

func jobPath(id string, suffix string) string {
	return "/jobs/" + url.PathEscape(id) + suffix
}

// List returns every job posting.
func (a *JobsAPI) List(ctx context.Context) ([]types.JobPosting, error) {
	return Call[[]types.JobPosting](ctx, a.client, http.MethodGet, "/jobs/get", nil)
}

// IDs returns the identifiers of all job postings.
func (a *JobsAPI) IDs(ctx context.Context) ([]string, error) {
	return Call[[]string](ctx, a.client, http.MethodGet, "/jobs/ids", nil)
}

// Create submits a new posting built from draft.
func (a *JobsAPI) Create(ctx context.Context, draft types.JobDraft) (types.JobMutationResult, error) {
	return a.mutate(ctx, http.MethodPost, "/jobs/create", draft.Payload(), true)
}

// Update replaces the posting id with draft.
func (a *JobsAPI) Update(ctx context.Context, id string, draft types.JobDraft) (types.JobMutationResult, error) {
	return a.mutate(ctx, http.MethodPut, jobPath(id, ""), draft.Payload(), true)
}

// Delete removes the posting id. Any 2xx response counts as success.
func (a *JobsAPI) Delete(ctx context.Context, id string) (types.JobMutationResult, error) {
	return a.mutate(ctx, http.MethodDelete, jobPath(id, ""), nil, false)
}

// Ratings returns the candidate rating distribution of job id.
func (a *JobsAPI) Ratings(ctx context.Context, id string) (types.RatingDistribution, error) {
	return Call[types.RatingDistribution](ctx, a.client, http.MethodGet, jobPath(id, "/ratings"), nil)
}

// TopSkills returns the most frequent candidate skills.
func (a *JobsAPI) TopSkills(ctx context.Context) ([]string, error) {
	return Call[[]string](ctx, a.client, http.MethodGet, "/skills/top", nil)
}

// mutate sends a job mutation. When requireStatus is set, a 2xx body whose
// status is not "success" is reported as a RequestFailedError with its detail.
func (a *JobsAPI) mutate(ctx context.Context, method, path string, body any, requireStatus bool) (types.JobMutationResult, error) {
	result, err := Call[types.JobMutationResult](ctx, a.client, method, path, body)
	if err != nil {
		return result, err
	}
	if requireStatus && !result.Succeeded() {
		return result, &RequestFailedError{
			Method:     method,
			Path:       path,
			StatusCode: http.StatusOK,
			StatusText: "unexpected status " + quoteStatus(result.Status),
			Detail:     result.Detail,
		}
	}
	return result, nil
}

func quoteStatus(s string) string {
	if s == "" {
		return `""`
	}
	return `"` + s + `"`
}
