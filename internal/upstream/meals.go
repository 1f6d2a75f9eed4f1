package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Meals manages daily menus through /meals.
type Meals struct {
	api *gateway.Client
}

func NewMeals(api *gateway.Client) *Meals {
	return &Meals{api: api}
}

func (m *Meals) List(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	err := m.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/meals",
		Out:    &meals,
	})
	return meals, err
}

func (m *Meals) Today(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	err := m.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/meals/today",
		Out:    &meals,
	})
	return meals, err
}

func (m *Meals) Create(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	var created domain.Meal
	err := m.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/meals",
		Body:   meal,
		Out:    &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (m *Meals) Update(ctx context.Context, id int64, meal domain.Meal) (*domain.Meal, error) {
	var updated domain.Meal
	err := m.api.Do(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/meals/%d", id),
		Body:   meal,
		Out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (m *Meals) Delete(ctx context.Context, id int64) error {
	return m.api.Do(ctx, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/meals/%d", id),
	})
}
