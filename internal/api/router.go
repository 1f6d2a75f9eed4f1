package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/messmgmt/mess-console/internal/api/handler"
	"github.com/messmgmt/mess-console/internal/api/middleware"
	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// Deps carries everything the router wires together.
type Deps struct {
	Sessions ports.ConsoleSessionService
	Stores   ports.SessionStores

	Users     ports.UserClient
	Meals     ports.MealClient
	Plans     ports.PlanClient
	Payments  ports.PaymentClient
	Feedbacks ports.FeedbackClient
	Dashboard ports.DashboardClient

	Audit    ports.AuditService
	Recorder ports.AuditRecorder

	// Optional, probed by readiness when present.
	Mongo *mongo.Database
	Redis *redis.Client

	SessionTTL    time.Duration
	SecureCookies bool
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("messconsole"))
	e.Use(middleware.Session(deps.Sessions, deps.Stores))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.SessionTTL, deps.SecureCookies)
	userHandler := handler.NewUserHandler(deps.Users, deps.Recorder)
	mealHandler := handler.NewMealHandler(deps.Meals, deps.Recorder)
	planHandler := handler.NewPlanHandler(deps.Plans, deps.Recorder)
	paymentHandler := handler.NewPaymentHandler(deps.Payments, deps.Recorder)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedbacks, deps.Recorder)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard, deps.Audit)

	// --- Session endpoints (no role gate) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Protected console screens (ADMIN only) ---
	admin := e.Group("/admin", middleware.RequireRole(domain.RoleAdmin))

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.GET("/users/:id/mess-plan", userHandler.MessPlan)

	admin.GET("/meals", mealHandler.List)
	admin.GET("/meals/today", mealHandler.Today)
	admin.POST("/meals", mealHandler.Create)
	admin.PUT("/meals/:id", mealHandler.Update)
	admin.DELETE("/meals/:id", mealHandler.Delete)

	admin.GET("/mess-plans", planHandler.List)
	admin.POST("/mess-plans", planHandler.Create)
	admin.PUT("/mess-plans/:id", planHandler.Update)
	admin.DELETE("/mess-plans/:id", planHandler.Delete)

	admin.GET("/payments", paymentHandler.List)
	admin.GET("/payments/pending", paymentHandler.Pending)
	admin.POST("/payments/:id/verify", paymentHandler.Verify)
	admin.POST("/payments/:id/reject", paymentHandler.Reject)

	admin.GET("/feedbacks", feedbackHandler.List)
	admin.GET("/feedbacks/pending", feedbackHandler.Pending)
	admin.POST("/feedbacks/:id/resolve", feedbackHandler.Resolve)

	admin.GET("/dashboard/stats", dashboardHandler.Stats)
	admin.GET("/audit", dashboardHandler.Audit)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
