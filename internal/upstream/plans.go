package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Plans manages subscription plans through /api/mess-plans.
type Plans struct {
	api *gateway.Client
}

func NewPlans(api *gateway.Client) *Plans {
	return &Plans{api: api}
}

func (p *Plans) List(ctx context.Context) ([]domain.MessPlan, error) {
	var plans []domain.MessPlan
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/api/mess-plans",
		Out:    &plans,
	})
	return plans, err
}

func (p *Plans) Create(ctx context.Context, plan domain.MessPlan) (*domain.MessPlan, error) {
	var created domain.MessPlan
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/api/mess-plans",
		Body:   plan,
		Out:    &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *Plans) Update(ctx context.Context, id int64, plan domain.MessPlan) (*domain.MessPlan, error) {
	var updated domain.MessPlan
	err := p.api.Do(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/api/mess-plans/%d", id),
		Body:   plan,
		Out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (p *Plans) Delete(ctx context.Context, id int64) error {
	return p.api.Do(ctx, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/mess-plans/%d", id),
	})
}
