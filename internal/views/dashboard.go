package views

import (
	"context"
	"time"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/resource"
	"github.com/jonathan/jobdash/internal/types"
)

// Dashboard defaults.
const (
	DefaultWindowDays      = 30
	DefaultTopN            = 5
	DefaultRefreshInterval = 5 * time.Minute
)

// DashboardData is one consistent page load of the aggregate cards.
type DashboardData struct {
	Window types.TimeFrame
	Totals types.TotalsSnapshot
	Pros   []types.ReasonPercent
	Cons   []types.ReasonPercent
}

// DashboardOptions configures the aggregate view.
type DashboardOptions struct {
	Options
	WindowDays      int
	TopN            int
	RefreshInterval time.Duration
}

// DefaultDashboardOptions returns the last-30-days, top-5, 5-minute setup.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		WindowDays:      DefaultWindowDays,
		TopN:            DefaultTopN,
		RefreshInterval: DefaultRefreshInterval,
	}
}

// Dashboard loads totals, top pros and top cons together and refreshes them
// on a timer while mounted.
type Dashboard struct {
	*view[DashboardData]
	api  *api.DashboardAPI
	opts DashboardOptions
}

// NewDashboard builds the aggregate view on client.
func NewDashboard(client *api.Client, opts DashboardOptions) *Dashboard {
	opts.Options = opts.Options.withDefaults()
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	d := &Dashboard{api: api.NewDashboardAPI(client), opts: opts}
	d.view = newView("dashboard", d.load, opts.Options, resource.WithRefreshInterval(opts.RefreshInterval))
	return d
}

// load issues the three queries concurrently. Any failure fails the whole
// page load and the partial results are dropped.
func (d *Dashboard) load(ctx context.Context) (DashboardData, error) {
	frame := types.LastDays(d.opts.Clock.Now(), d.opts.WindowDays)
	topN := types.TopNRequest{TimeFrame: frame, N: d.opts.TopN}

	var (
		totals     types.TotalsSnapshot
		pros, cons []types.ReasonPercent
	)
	err := resource.Batch(ctx,
		func(ctx context.Context) (err error) {
			totals, err = d.api.Totals(ctx, frame)
			return err
		},
		func(ctx context.Context) (err error) {
			pros, err = d.api.TopPros(ctx, topN)
			return err
		},
		func(ctx context.Context) (err error) {
			cons, err = d.api.TopCons(ctx, topN)
			return err
		},
	)
	if err != nil {
		return DashboardData{}, err
	}

	return DashboardData{Window: frame, Totals: totals, Pros: pros, Cons: cons}, nil
}
