package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobdash/internal/types"
)

// DashboardAPI groups the aggregate and router endpoints.
type DashboardAPI struct {
	client *Client
}

// NewDashboardAPI binds the aggregate endpoints to client.
func NewDashboardAPI(client *Client) *DashboardAPI {
	return &DashboardAPI{client: client}
}

// Totals returns the counters for frame.
func (a *DashboardAPI) Totals(ctx context.Context, frame types.TimeFrame) (types.TotalsSnapshot, error) {
	return Call[types.TotalsSnapshot](ctx, a.client, http.MethodPost, "/applications/totals/summary", frame)
}

// TopPros returns the top req.N approval reasons, in server rank order.
func (a *DashboardAPI) TopPros(ctx context.Context, req types.TopNRequest) ([]types.ReasonPercent, error) {
	return Call[[]types.ReasonPercent](ctx, a.client, http.MethodPost, "/applications/totals/pros", req)
}

// TopCons returns the top req.N rejection reasons, in server rank order.
func (a *DashboardAPI) TopCons(ctx context.Context, req types.TopNRequest) ([]types.ReasonPercent, error) {
	return Call[[]types.ReasonPercent](ctx, a.client, http.MethodPost, "/applications/totals/cons", req)
}

// Routers lists the available router names.
func (a *DashboardAPI) Routers(ctx context.Context) ([]types.RouterName, error) {
	return Call[[]types.RouterName](ctx, a.client, http.MethodGet, "/routers", nil)
}
