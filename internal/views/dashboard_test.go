package views

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/resource"
)

func TestDashboard_LoadsAllThreeCards(t *testing.T) {
	backend := newFakeBackend()
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	opts := DefaultDashboardOptions()
	opts.Options = testOptions(clockwork.NewFakeClockAt(now))
	opts.RefreshInterval = 0
	dash := NewDashboard(newTestClient(t, backend), opts)
	defer dash.Close()

	state, err := dash.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resource.Ready, state.Status)
	assert.Equal(t, 10, state.Data.Totals.TotalApplications)
	require.Len(t, state.Data.Pros, 1)
	assert.Equal(t, "Go", state.Data.Pros[0].Reason)
	require.Len(t, state.Data.Cons, 1)
	assert.Equal(t, now, state.Data.Window.EndTime)
	assert.Equal(t, now.AddDate(0, 0, -30), state.Data.Window.StartTime)
}

func TestDashboard_OneFailedQueryFailsTheLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.override(http.MethodPost, "/applications/totals/pros", fail(http.StatusInternalServerError, "db down"))
	opts := DefaultDashboardOptions()
	opts.Options = testOptions(clockwork.NewFakeClock())
	opts.RefreshInterval = 0
	dash := NewDashboard(newTestClient(t, backend), opts)
	defer dash.Close()

	state, err := dash.Refetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, resource.Failed, state.Status)
	assert.False(t, state.HasData)
	assert.Empty(t, state.Data.Cons)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	assert.Contains(t, state.ErrorMessage(), "Internal Server Error")
}

func TestDashboard_DefaultsFillZeroOptions(t *testing.T) {
	dash := NewDashboard(newTestClient(t, newFakeBackend()), DashboardOptions{})
	defer dash.Close()
	assert.Equal(t, DefaultWindowDays, dash.opts.WindowDays)
	assert.Equal(t, DefaultTopN, dash.opts.TopN)
}

func TestDashboard_MountRefreshesOnTimer(t *testing.T) {
	backend := newFakeBackend()
	clock := clockwork.NewFakeClock()
	opts := DefaultDashboardOptions()
	opts.Options = testOptions(clock)
	dash := NewDashboard(newTestClient(t, backend), opts)
	defer dash.Close()

	require.NoError(t, dash.Mount(context.Background()))
	require.Eventually(t, func() bool { return dash.State().Status == resource.Ready }, 2*time.Second, 5*time.Millisecond)
	first := dash.State().Generation

	clock.Advance(DefaultRefreshInterval)
	require.Eventually(t, func() bool {
		s := dash.State()
		return s.Status == resource.Ready && s.Generation > first
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDashboard_CloseStopsServerTraffic(t *testing.T) {
	backend := newFakeBackend()
	clock := clockwork.NewFakeClock()
	opts := DefaultDashboardOptions()
	opts.Options = testOptions(clock)
	dash := NewDashboard(newTestClient(t, backend), opts)

	require.NoError(t, dash.Mount(context.Background()))
	require.Eventually(t, func() bool { return dash.State().Status == resource.Ready }, 2*time.Second, 5*time.Millisecond)
	dash.Close()
	hits := backend.hits.Load()

	clock.Advance(DefaultRefreshInterval)
	clock.Advance(DefaultRefreshInterval)
	assert.Never(t, func() bool { return backend.hits.Load() != hits }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestRouters_LoadAndSort(t *testing.T) {
	routers := NewRouters(newTestClient(t, newFakeBackend()), testOptions(clockwork.NewFakeClock()))
	defer routers.Close()

	state, err := routers.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lever", "greenhouse"}, state.Data)
	assert.Equal(t, []string{"greenhouse", "lever"}, Sorted(state.Data))
	assert.Equal(t, []string{"lever", "greenhouse"}, state.Data)
}
