package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/messmgmt/mess-console/internal/api"
	"github.com/messmgmt/mess-console/internal/api/metrics"
	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
	"github.com/messmgmt/mess-console/internal/core/service"
	"github.com/messmgmt/mess-console/internal/gateway"
	"github.com/messmgmt/mess-console/internal/infrastructure/config"
	"github.com/messmgmt/mess-console/internal/infrastructure/db/mongo"
	"github.com/messmgmt/mess-console/internal/infrastructure/db/redis"
	"github.com/messmgmt/mess-console/internal/infrastructure/queue"
	"github.com/messmgmt/mess-console/internal/infrastructure/storage"
	"github.com/messmgmt/mess-console/internal/upstream"
	"github.com/messmgmt/mess-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "mess-console",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("console terminated")
	}
	log.Info().Msg("console stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// Durable session backend: redis by default, files for single-node runs.
	var (
		stores      ports.SessionStores
		redisClient *goredis.Client
	)
	switch cfg.Session.Store {
	case "file":
		fs, err := storage.NewFileSessions(cfg.Session.Dir, logger.With("sessions"))
		if err != nil {
			return fmt.Errorf("session dir: %w", err)
		}
		stores = fs
		log.Info().Str("dir", cfg.Session.Dir).Msg("file session store ready")
	default:
		client, err := redis.Connect(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		stores = redis.NewSessions(client, cfg.Session.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis session store ready")
	}

	// Audit trail storage.
	mongoClient, db, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	auditRepo := mongo.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	auditService := service.NewAuditService(auditRepo, logger.With("audit"))

	dispatcher := queue.NewDispatcher(0, auditService, logger.With("audit"))
	dispatcher.Start(ctx)

	// Backend gateway. A 401 on any authenticated call tears down the
	// session; the route guard turns the next navigation into a login.
	gw, err := gateway.New(cfg.Upstream.BaseURL, &http.Client{Timeout: cfg.Upstream.Timeout}, logger.With("gateway"), gateway.Options{
		Notify: func(_ context.Context, s *domain.Session) {
			metrics.ForcedLogoutsTotal.Inc()
			evt := log.Warn()
			if s != nil {
				evt = evt.Str("email", s.Email)
			}
			evt.Msg("session invalidated by backend")
		},
		Observe: metrics.ObserveUpstream,
	})
	if err != nil {
		return err
	}

	sessions := service.NewSessionService(
		upstream.NewAuth(gw),
		stores,
		cfg.Session.Secret,
		cfg.Session.TTL,
		logger.With("sessions"),
	)

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Stores:   stores,

		Users:     upstream.NewUsers(gw),
		Meals:     upstream.NewMeals(gw),
		Plans:     upstream.NewPlans(gw),
		Payments:  upstream.NewPayments(gw),
		Feedbacks: upstream.NewFeedbacks(gw),
		Dashboard: upstream.NewDashboard(gw),

		Audit:    auditService,
		Recorder: dispatcher,

		Mongo: db,
		Redis: redisClient,

		SessionTTL:    cfg.Session.TTL,
		SecureCookies: cfg.Env != "development",
		Log:           log,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info().Str("port", cfg.Port).Str("upstream", cfg.Upstream.BaseURL).Msg("console listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
