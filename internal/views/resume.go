package views

import (
	"context"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/mutation"
	"github.com/jonathan/jobdash/internal/resource"
	"github.com/jonathan/jobdash/internal/timeline"
	"github.com/jonathan/jobdash/internal/types"
)

// ResumeData is one consistent read of both resume collections.
type ResumeData struct {
	Experiences []types.Experience
	Projects    []types.Project
}

// Resume manages experiences and projects. Records are addressed by their
// index in the server's list; an index taken from an older read may point
// at a different record if the list changed in between. There is no
// conflict detection beyond what the server reports.
type Resume struct {
	*view[ResumeData]
	api         *api.ResumeAPI
	coordinator *mutation.Coordinator
	opts        Options
}

// NewResume builds the resume view on client.
func NewResume(client *api.Client, opts Options) *Resume {
	opts = opts.withDefaults()
	r := &Resume{api: api.NewResumeAPI(client), opts: opts}
	r.view = newView("resume", r.load, opts)
	r.coordinator = mutation.New(r.reloader(), opts.Logger)
	return r
}

func (r *Resume) load(ctx context.Context) (ResumeData, error) {
	var data ResumeData
	err := resource.Batch(ctx,
		func(ctx context.Context) (err error) {
			data.Experiences, err = r.api.ListExperiences(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			data.Projects, err = r.api.ListProjects(ctx)
			return err
		},
	)
	if err != nil {
		return ResumeData{}, err
	}
	return data, nil
}

// Timeline derives the merged timeline from the current state.
func (r *Resume) Timeline() []types.TimelineItem {
	data := r.State().Data
	return timeline.Derive(data.Experiences, data.Projects, r.opts.Clock.Now())
}

// Experience reads a single experience without touching the view state.
func (r *Resume) Experience(ctx context.Context, index int) (types.Experience, error) {
	if err := checkIndex(index); err != nil {
		return types.Experience{}, err
	}
	return r.api.GetExperience(r.ctx(ctx), index)
}

// Project reads a single project without touching the view state.
func (r *Resume) Project(ctx context.Context, index int) (types.Project, error) {
	if err := checkIndex(index); err != nil {
		return types.Project{}, err
	}
	return r.api.GetProject(r.ctx(ctx), index)
}

// AddExperience appends exp on the server and reloads both collections.
func (r *Resume) AddExperience(ctx context.Context, exp types.Experience) (mutation.Outcome, error) {
	if err := exp.Validate(); err != nil {
		return mutation.Outcome{}, &ValidationError{Message: "invalid experience", Cause: err}
	}
	return r.coordinator.Perform(r.ctx(ctx), "add_experience", func(ctx context.Context) error {
		_, err := r.api.AddExperience(ctx, exp)
		return err
	})
}

// UpdateExperience replaces the experience at index and reloads.
func (r *Resume) UpdateExperience(ctx context.Context, index int, exp types.Experience) (mutation.Outcome, error) {
	if err := checkIndex(index); err != nil {
		return mutation.Outcome{}, err
	}
	if err := exp.Validate(); err != nil {
		return mutation.Outcome{}, &ValidationError{Message: "invalid experience", Cause: err}
	}
	return r.coordinator.Perform(r.ctx(ctx), "update_experience", func(ctx context.Context) error {
		_, err := r.api.UpdateExperience(ctx, index, exp)
		return err
	})
}

// DeleteExperience removes the experience at index and reloads.
func (r *Resume) DeleteExperience(ctx context.Context, index int) (mutation.Outcome, error) {
	if err := checkIndex(index); err != nil {
		return mutation.Outcome{}, err
	}
	return r.coordinator.Perform(r.ctx(ctx), "delete_experience", func(ctx context.Context) error {
		_, err := r.api.DeleteExperience(ctx, index)
		return err
	})
}

// AddProject appends proj on the server and reloads.
func (r *Resume) AddProject(ctx context.Context, proj types.Project) (mutation.Outcome, error) {
	if err := proj.Validate(); err != nil {
		return mutation.Outcome{}, &ValidationError{Message: "invalid project", Cause: err}
	}
	return r.coordinator.Perform(r.ctx(ctx), "add_project", func(ctx context.Context) error {
		_, err := r.api.AddProject(ctx, proj)
		return err
	})
}

// UpdateProject replaces the project at index and reloads.
func (r *Resume) UpdateProject(ctx context.Context, index int, proj types.Project) (mutation.Outcome, error) {
	if err := checkIndex(index); err != nil {
		return mutation.Outcome{}, err
	}
	if err := proj.Validate(); err != nil {
		return mutation.Outcome{}, &ValidationError{Message: "invalid project", Cause: err}
	}
	return r.coordinator.Perform(r.ctx(ctx), "update_project", func(ctx context.Context) error {
		_, err := r.api.UpdateProject(ctx, index, proj)
		return err
	})
}

// DeleteProject removes the project at index and reloads.
func (r *Resume) DeleteProject(ctx context.Context, index int) (mutation.Outcome, error) {
	if err := checkIndex(index); err != nil {
		return mutation.Outcome{}, err
	}
	return r.coordinator.Perform(r.ctx(ctx), "delete_project", func(ctx context.Context) error {
		_, err := r.api.DeleteProject(ctx, index)
		return err
	})
}
