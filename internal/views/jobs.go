package views

import (
	"context"
	"strings"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/mutation"
	"github.com/jonathan/jobdash/internal/types"
)

// Jobs manages the job postings of the hiring dashboard.
type Jobs struct {
	*view[[]types.JobPosting]
	api         *api.JobsAPI
	coordinator *mutation.Coordinator
}

// NewJobs builds the job postings view on client.
func NewJobs(client *api.Client, opts Options) *Jobs {
	opts = opts.withDefaults()
	j := &Jobs{api: api.NewJobsAPI(client)}
	j.view = newView("jobs", j.load, opts)
	j.coordinator = mutation.New(j.reloader(), opts.Logger)
	return j
}

func (j *Jobs) load(ctx context.Context) ([]types.JobPosting, error) {
	return j.api.List(ctx)
}

// Create submits draft and reloads. The returned ID is the server's job_id.
func (j *Jobs) Create(ctx context.Context, draft types.JobDraft) (mutation.Outcome, string, error) {
	if err := draft.Validate(); err != nil {
		return mutation.Outcome{}, "", &ValidationError{Message: "invalid job posting", Cause: err}
	}
	var jobID string
	outcome, err := j.coordinator.Perform(j.ctx(ctx), "create_job", func(ctx context.Context) error {
		result, err := j.api.Create(ctx, draft)
		jobID = result.JobID
		return err
	})
	return outcome, jobID, err
}

// Update replaces posting id with draft and reloads.
func (j *Jobs) Update(ctx context.Context, id string, draft types.JobDraft) (mutation.Outcome, error) {
	if err := checkJobID(id); err != nil {
		return mutation.Outcome{}, err
	}
	if err := draft.Validate(); err != nil {
		return mutation.Outcome{}, &ValidationError{Message: "invalid job posting", Cause: err}
	}
	return j.coordinator.Perform(j.ctx(ctx), "update_job", func(ctx context.Context) error {
		_, err := j.api.Update(ctx, id, draft)
		return err
	})
}

// Delete removes posting id and reloads.
func (j *Jobs) Delete(ctx context.Context, id string) (mutation.Outcome, error) {
	if err := checkJobID(id); err != nil {
		return mutation.Outcome{}, err
	}
	return j.coordinator.Perform(j.ctx(ctx), "delete_job", func(ctx context.Context) error {
		_, err := j.api.Delete(ctx, id)
		return err
	})
}

// Find returns the posting with id from the current state.
func (j *Jobs) Find(id string) (types.JobPosting, int, bool) {
	for i, posting := range j.State().Data {
		if posting.ID == id {
			return posting, i, true
		}
	}
	return types.JobPosting{}, -1, false
}

func checkJobID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Message: "job id is required"}
	}
	return nil
}
