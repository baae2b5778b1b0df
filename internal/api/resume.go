package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/jobdash/internal/types"
)

const (
	experiencePath = "/resume/experience"
	projectPath    = "/resume/project"
)

// ResumeAPI groups the experience and project endpoints. Records are
// addressed by their index in the last list returned by the server.
type ResumeAPI struct {
	client *Client
}

// NewResumeAPI binds the resume endpoints to client.
func NewResumeAPI(client *Client) *ResumeAPI {
	return &ResumeAPI{client: client}
}

func indexPath(base string, index int) string {
	return fmt.Sprintf("%s/%d", base, index)
}

// ListExperiences returns all experiences in server order.
func (a *ResumeAPI) ListExperiences(ctx context.Context) ([]types.Experience, error) {
	return Call[[]types.Experience](ctx, a.client, http.MethodGet, experiencePath, nil)
}

// GetExperience returns the experience at index.
func (a *ResumeAPI) GetExperience(ctx context.Context, index int) (types.Experience, error) {
	return Call[types.Experience](ctx, a.client, http.MethodGet, indexPath(experiencePath, index), nil)
}

// AddExperience appends exp.
func (a *ResumeAPI) AddExperience(ctx context.Context, exp types.Experience) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodPost, experiencePath, exp)
}

// UpdateExperience replaces the experience at index.
func (a *ResumeAPI) UpdateExperience(ctx context.Context, index int, exp types.Experience) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodPut, indexPath(experiencePath, index), exp)
}

// DeleteExperience removes the experience at index.
func (a *ResumeAPI) DeleteExperience(ctx context.Context, index int) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodDelete, indexPath(experiencePath, index), nil)
}

// ListProjects returns all projects in server order.
func (a *ResumeAPI) ListProjects(ctx context.Context) ([]types.Project, error) {
	return Call[[]types.Project](ctx, a.client, http.MethodGet, projectPath, nil)
}

// GetProject returns the project at index.
func (a *ResumeAPI) GetProject(ctx context.Context, index int) (types.Project, error) {
	return Call[types.Project](ctx, a.client, http.MethodGet, indexPath(projectPath, index), nil)
}

// AddProject appends proj.
func (a *ResumeAPI) AddProject(ctx context.Context, proj types.Project) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodPost, projectPath, proj)
}

// UpdateProject replaces the project at index.
func (a *ResumeAPI) UpdateProject(ctx context.Context, index int, proj types.Project) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodPut, indexPath(projectPath, index), proj)
}

// DeleteProject removes the project at index.
func (a *ResumeAPI) DeleteProject(ctx context.Context, index int) (types.MessageResponse, error) {
	return Call[types.MessageResponse](ctx, a.client, http.MethodDelete, indexPath(projectPath, index), nil)
}
