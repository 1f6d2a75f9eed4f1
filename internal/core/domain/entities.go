package domain

import "time"

// MealType identifies which serving of the day a menu belongs to.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
)

// PaymentStatus is the verification state of a subscription payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// FeedbackStatus tracks the resolution lifecycle of diner feedback.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "PENDING"
	FeedbackReviewed FeedbackStatus = "REVIEWED"
	FeedbackResolved FeedbackStatus = "RESOLVED"
)

// User is a mess member account managed through the admin console.
// Password is only ever populated on the way upstream when creating an
// account; the backend never echoes it back.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// Meal is one day's menu for a given serving.
type Meal struct {
	ID        int64     `json:"id"`
	MealDate  time.Time `json:"mealDate"`
	MealType  MealType  `json:"mealType"`
	MenuItems string    `json:"menuItems"`
}

// MessPlan is a purchasable subscription plan.
type MessPlan struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	TotalDays int     `json:"totalDays"`
}

// Payment is a member's subscription payment awaiting or past verification.
type Payment struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"userId"`
	UserName    string        `json:"userName"`
	Amount      float64       `json:"amount"`
	UTRNumber   string        `json:"utrNumber"`
	PaymentDate time.Time     `json:"paymentDate"`
	Status      PaymentStatus `json:"status"`
}

// Feedback is a diner complaint or suggestion routed to the admin.
type Feedback struct {
	ID        int64          `json:"id"`
	UserName  string         `json:"userName"`
	Message   string         `json:"message"`
	Status    FeedbackStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	Response  string         `json:"response,omitempty"`
}

// DashboardStats is the aggregate counters shown on the console landing page.
type DashboardStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalMeals       int64 `json:"totalMeals"`
	TotalPayments    int64 `json:"totalPayments"`
	PendingFeedbacks int64 `json:"pendingFeedbacks"`
}
