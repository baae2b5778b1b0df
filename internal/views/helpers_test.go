package views

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/types"
)

// fakeBackend is an in-memory stand-in for the dashboard and resume
// services. Handlers can be overridden per path to inject failures.
type fakeBackend struct {
	mu          sync.Mutex
	experiences []types.Experience
	projects    []types.Project
	overrides   map[string]http.HandlerFunc
	hits        atomic.Int64
	paths       []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{overrides: make(map[string]http.HandlerFunc)}
}

func (b *fakeBackend) override(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = h
}

func (b *fakeBackend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.hits.Add(1)
	b.mu.Lock()
	b.paths = append(b.paths, r.Method+" "+r.URL.Path)
	h, ok := b.overrides[r.Method+" "+r.URL.Path]
	b.mu.Unlock()
	if ok {
		h(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/applications/totals/summary":
		writeJSON(w, types.TotalsSnapshot{TotalApplications: 10, RelevantMatches: 4, Approved: 2})
	case r.URL.Path == "/applications/totals/pros":
		writeJSON(w, []types.ReasonPercent{{Reason: "Go", Percent: "50%"}})
	case r.URL.Path == "/applications/totals/cons":
		writeJSON(w, []types.ReasonPercent{{Reason: "Onsite", Percent: "30%"}})
	case r.URL.Path == "/routers":
		writeJSON(w, []string{"lever", "greenhouse"})
	case strings.HasPrefix(r.URL.Path, "/resume/experience"):
		b.serveExperience(w, r)
	case strings.HasPrefix(r.URL.Path, "/resume/project"):
		b.serveProject(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) serveExperience(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	index, hasIndex := pathIndex(r.URL.Path)
	switch {
	case r.Method == http.MethodGet && !hasIndex:
		writeJSON(w, b.experiences)
	case r.Method == http.MethodPost:
		var exp types.Experience
		readJSON(r, &exp)
		b.experiences = append(b.experiences, exp)
		writeJSON(w, types.MessageResponse{Message: "added"})
	case r.Method == http.MethodPut && index < len(b.experiences):
		var exp types.Experience
		readJSON(r, &exp)
		b.experiences[index] = exp
		writeJSON(w, types.MessageResponse{Message: "updated"})
	case r.Method == http.MethodDelete && index < len(b.experiences):
		b.experiences = append(b.experiences[:index], b.experiences[index+1:]...)
		writeJSON(w, types.MessageResponse{Message: "deleted"})
	case r.Method == http.MethodGet && index < len(b.experiences):
		writeJSON(w, b.experiences[index])
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Experience not found"}`))
	}
}

func (b *fakeBackend) serveProject(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	index, hasIndex := pathIndex(r.URL.Path)
	switch {
	case r.Method == http.MethodGet && !hasIndex:
		writeJSON(w, b.projects)
	case r.Method == http.MethodPost:
		var proj types.Project
		readJSON(r, &proj)
		b.projects = append(b.projects, proj)
		writeJSON(w, types.MessageResponse{Message: "added"})
	case r.Method == http.MethodDelete && index < len(b.projects):
		b.projects = append(b.projects[:index], b.projects[index+1:]...)
		writeJSON(w, types.MessageResponse{Message: "deleted"})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Project not found"}`))
	}
}

func pathIndex(path string) (int, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 {
		return 0, false
	}
	i, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return i, true
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) {
	b, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(b, v)
}

func fail(status int, detail string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"` + detail + `"}`))
	}
}

func newTestClient(t *testing.T, h http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts := api.DefaultOptions()
	opts.Timeout = 5 * time.Second
	client, err := api.New(srv.URL, opts)
	require.NoError(t, err)
	return client
}

func testOptions(clock clockwork.Clock) Options {
	return Options{
		Clock:  clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
