package views

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/types"
)

// jobsBackend serves the hiring endpoints from memory.
type jobsBackend struct {
	mu      sync.Mutex
	jobs    []types.JobPosting
	ratings map[string]map[string]int
	nextID  int
	mux     *http.ServeMux
}

func newJobsBackend() *jobsBackend {
	b := &jobsBackend{ratings: map[string]map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jobs/get", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.jobs)
	})
	mux.HandleFunc("GET /jobs/ids", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		ids := make([]string, 0, len(b.jobs))
		for _, j := range b.jobs {
			ids = append(ids, j.ID)
		}
		writeJSON(w, ids)
	})
	mux.HandleFunc("POST /jobs/create", func(w http.ResponseWriter, r *http.Request) {
		var payload types.JobPayload
		readJSON(r, &payload)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		id := "job-" + string(rune('a'+b.nextID-1))
		b.jobs = append(b.jobs, types.JobPosting{ID: id, Description: payload.Description, Questions: payload.Questions})
		writeJSON(w, types.JobMutationResult{Status: "success", JobID: id})
	})
	mux.HandleFunc("PUT /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		var payload types.JobPayload
		readJSON(r, &payload)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.jobs {
			if b.jobs[i].ID == r.PathValue("id") {
				b.jobs[i].Description = payload.Description
				b.jobs[i].Questions = payload.Questions
				writeJSON(w, types.JobMutationResult{Status: "success"})
				return
			}
		}
		writeJSON(w, types.JobMutationResult{Status: "error", Detail: "job not found"})
	})
	mux.HandleFunc("DELETE /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.jobs {
			if b.jobs[i].ID == r.PathValue("id") {
				b.jobs = append(b.jobs[:i], b.jobs[i+1:]...)
				writeJSON(w, types.MessageResponse{Message: "deleted"})
				return
			}
		}
		fail(http.StatusNotFound, "job not found")(w, r)
	})
	mux.HandleFunc("GET /jobs/{id}/ratings", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		writeJSON(w, types.RatingDistribution{JobID: id, Distribution: b.ratings[id]})
	})
	mux.HandleFunc("GET /skills/top", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []string{"go", "sql"})
	})
	b.mux = mux
	return b
}

func (b *jobsBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mux.ServeHTTP(w, r)
}

func testDraft(title string) types.JobDraft {
	return types.JobDraft{
		Title:       title,
		Description: "Build services.",
		Questions:   types.DefaultJobQuestions(),
	}
}

func TestJobs_CreateUpdateDelete(t *testing.T) {
	backend := newJobsBackend()
	jobs := NewJobs(newTestClient(t, backend), testOptions(clockwork.NewFakeClock()))
	defer jobs.Close()

	outcome, id, err := jobs.Create(context.Background(), testDraft("Backend Engineer"))
	require.NoError(t, err)
	assert.True(t, outcome.Confirmed())
	assert.Equal(t, "job-a", id)

	posting, pos, ok := jobs.Find(id)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "Backend Engineer", posting.Title(pos))
	assert.Equal(t, "Build services.", posting.Body())

	_, err = jobs.Update(context.Background(), id, testDraft("Staff Engineer"))
	require.NoError(t, err)
	posting, pos, _ = jobs.Find(id)
	assert.Equal(t, "Staff Engineer", posting.Title(pos))

	_, err = jobs.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, jobs.State().Data)
}

func TestJobs_UpdateRejectedByServer(t *testing.T) {
	jobs := NewJobs(newTestClient(t, newJobsBackend()), testOptions(clockwork.NewFakeClock()))
	defer jobs.Close()

	outcome, err := jobs.Update(context.Background(), "missing", testDraft("X"))
	require.Error(t, err)
	assert.False(t, outcome.Saved)

	var reqErr *api.RequestFailedError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "job not found", reqErr.Detail)
}

func TestJobs_Validation(t *testing.T) {
	jobs := NewJobs(newTestClient(t, newJobsBackend()), testOptions(clockwork.NewFakeClock()))
	defer jobs.Close()

	var vErr *ValidationError
	_, _, err := jobs.Create(context.Background(), types.JobDraft{Title: "x"})
	assert.True(t, errors.As(err, &vErr))

	_, err = jobs.Delete(context.Background(), "  ")
	assert.True(t, errors.As(err, &vErr))
}

func TestJobAnalytics_SelectsFirstJobByDefault(t *testing.T) {
	backend := newJobsBackend()
	backend.jobs = []types.JobPosting{{ID: "a"}, {ID: "b"}}
	backend.ratings["a"] = map[string]int{"1": 2, "5": 3}
	backend.ratings["b"] = map[string]int{"3": 4}
	analytics := NewJobAnalytics(newTestClient(t, backend), testOptions(clockwork.NewFakeClock()))
	defer analytics.Close()

	state, err := analytics.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, state.Data.JobIDs)
	assert.Equal(t, "a", state.Data.SelectedJobID)
	require.NotNil(t, state.Data.Ratings)
	assert.Equal(t, 5, state.Data.Ratings.Total())
	assert.Equal(t, []string{"go", "sql"}, state.Data.TopSkills)

	state, err = analytics.Select(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "b", state.Data.SelectedJobID)
	assert.Equal(t, 4, state.Data.Ratings.Total())

	state, err = analytics.Select(context.Background(), "gone")
	require.NoError(t, err)
	assert.Equal(t, "a", state.Data.SelectedJobID)
}

func TestJobAnalytics_NoJobs(t *testing.T) {
	analytics := NewJobAnalytics(newTestClient(t, newJobsBackend()), testOptions(clockwork.NewFakeClock()))
	defer analytics.Close()

	state, err := analytics.Refetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Data.SelectedJobID)
	assert.Nil(t, state.Data.Ratings)
}
