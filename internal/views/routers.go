package views

import (
	"context"
	"sort"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/types"
)

// Routers lists the available routers. The API returns them unordered;
// the view keeps them as received.
type Routers struct {
	*view[[]types.RouterName]
	api *api.DashboardAPI
}

// NewRouters builds the router list view on client.
func NewRouters(client *api.Client, opts Options) *Routers {
	r := &Routers{api: api.NewDashboardAPI(client)}
	r.view = newView("routers", r.load, opts.withDefaults())
	return r
}

func (r *Routers) load(ctx context.Context) ([]types.RouterName, error) {
	return r.api.Routers(ctx)
}

// Sorted returns a sorted copy of routers for stable display.
func Sorted(routers []types.RouterName) []types.RouterName {
	out := append([]types.RouterName(nil), routers...)
	sort.Strings(out)
	return out
}
