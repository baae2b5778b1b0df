package views

import (
	"context"
	"slices"
	"sync"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/resource"
	"github.com/jonathan/jobdash/internal/types"
)

// AnalyticsData is the candidate analytics page: job ids, the rating
// distribution of the selected job and the top skills.
type AnalyticsData struct {
	JobIDs        []string
	SelectedJobID string
	Ratings       *types.RatingDistribution
	TopSkills     []string
}

// JobAnalytics loads the hiring analytics page.
type JobAnalytics struct {
	*view[AnalyticsData]
	api *api.JobsAPI

	mu       sync.Mutex
	selected string
}

// NewJobAnalytics builds the analytics view on client.
func NewJobAnalytics(client *api.Client, opts Options) *JobAnalytics {
	a := &JobAnalytics{api: api.NewJobsAPI(client)}
	a.view = newView("analytics", a.load, opts.withDefaults())
	return a
}

// Select makes id the selected job and reloads.
func (a *JobAnalytics) Select(ctx context.Context, id string) (resource.State[AnalyticsData], error) {
	a.mu.Lock()
	a.selected = id
	a.mu.Unlock()
	return a.Refetch(ctx)
}

func (a *JobAnalytics) load(ctx context.Context) (AnalyticsData, error) {
	var data AnalyticsData
	err := resource.Batch(ctx,
		func(ctx context.Context) (err error) {
			data.JobIDs, err = a.api.IDs(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			data.TopSkills, err = a.api.TopSkills(ctx)
			return err
		},
	)
	if err != nil {
		return AnalyticsData{}, err
	}

	a.mu.Lock()
	selected := a.selected
	a.mu.Unlock()
	// An unknown or empty selection falls back to the first job.
	if !slices.Contains(data.JobIDs, selected) {
		selected = ""
		if len(data.JobIDs) > 0 {
			selected = data.JobIDs[0]
		}
	}
	data.SelectedJobID = selected

	if selected != "" {
		ratings, err := a.api.Ratings(ctx, selected)
		if err != nil {
			return AnalyticsData{}, err
		}
		data.Ratings = &ratings
	}
	return data, nil
}
