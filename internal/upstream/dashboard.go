package upstream

import (
	"context"
	"net/http"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Dashboard fetches the console landing page counters.
type Dashboard struct {
	api *gateway.Client
}

func NewDashboard(api *gateway.Client) *Dashboard {
	return &Dashboard{api: api}
}

func (d *Dashboard) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := d.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/api/admin/dashboard/stats",
		Out:    &stats,
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
