package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/gateway"
)

// Users manages mess member accounts through /admin/users.
type Users struct {
	api *gateway.Client
}

func NewUsers(api *gateway.Client) *Users {
	return &Users{api: api}
}

func (u *Users) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := u.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   "/admin/users",
		Out:    &users,
	})
	return users, err
}

func (u *Users) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	var created domain.User
	err := u.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/admin/users",
		Body:   user,
		Out:    &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *Users) Update(ctx context.Context, id int64, user domain.User) (*domain.User, error) {
	var updated domain.User
	err := u.api.Do(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/admin/users/%d", id),
		Body:   user,
		Out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	return u.api.Do(ctx, gateway.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/admin/users/%d", id),
	})
}

// MessPlan returns the plan a member is currently subscribed to.
func (u *Users) MessPlan(ctx context.Context, userID int64) (*domain.MessPlan, error) {
	var plan domain.MessPlan
	err := u.api.Do(ctx, gateway.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/user/%d/mess-plan", userID),
		Out:    &plan,
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
