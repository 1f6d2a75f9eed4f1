package ports

import (
	"context"

	"github.com/messmgmt/mess-console/internal/core/domain"
)

// AuthClient performs the unauthenticated login call against the backend.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// UserClient manages mess member accounts.
type UserClient interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	MessPlan(ctx context.Context, userID int64) (*domain.MessPlan, error)
}

// MealClient manages daily menus.
type MealClient interface {
	List(ctx context.Context) ([]domain.Meal, error)
	Today(ctx context.Context) ([]domain.Meal, error)
	Create(ctx context.Context, m domain.Meal) (*domain.Meal, error)
	Update(ctx context.Context, id int64, m domain.Meal) (*domain.Meal, error)
	Delete(ctx context.Context, id int64) error
}

// PlanClient manages subscription plans.
type PlanClient interface {
	List(ctx context.Context) ([]domain.MessPlan, error)
	Create(ctx context.Context, p domain.MessPlan) (*domain.MessPlan, error)
	Update(ctx context.Context, id int64, p domain.MessPlan) (*domain.MessPlan, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentClient lists and settles subscription payments.
type PaymentClient interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Pending(ctx context.Context) ([]domain.Payment, error)
	Verify(ctx context.Context, id int64, remarks string) (*domain.Payment, error)
	Reject(ctx context.Context, id int64, reason string) (*domain.Payment, error)
}

// FeedbackClient lists and resolves diner feedback.
type FeedbackClient interface {
	List(ctx context.Context) ([]domain.Feedback, error)
	Pending(ctx context.Context) ([]domain.Feedback, error)
	Resolve(ctx context.Context, id int64, response string) (*domain.Feedback, error)
}

// DashboardClient fetches the console landing page counters.
type DashboardClient interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
