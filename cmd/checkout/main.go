package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/api"
	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/config"
	"github.com/DanielPopoola/course-checkout/internal/infrastructure/gateway/paypal"
	"github.com/DanielPopoola/course-checkout/internal/infrastructure/lock"
	"github.com/DanielPopoola/course-checkout/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/course-checkout/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	orderRepo := postgres.NewOrderRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	entitlementRepo := postgres.NewEntitlementRepository(db, logger)

	paypalGateway := paypal.New(paypal.SettingsFromConfig(cfg.PayPal), logger)
	if paypalGateway.IsEnabled() {
		if err := paypalGateway.ValidateSettings(); err != nil {
			logger.Error("invalid paypal settings", "error", err)
			os.Exit(1)
		}
		logger.Info("paypal gateway enabled", "sandbox", paypalGateway.IsSandbox())
	}

	registry, err := application.NewRegistry(paypalGateway)
	if err != nil {
		logger.Error("failed to build gateway registry", "error", err)
		os.Exit(1)
	}

	var locker application.Locker = lock.NoopLocker{}
	if cfg.Redis.Addr != "" {
		redisClient, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient, cfg.Redis.LockTTL, logger)
	} else {
		logger.Warn("redis not configured, order creation is not serialized across instances")
	}

	completer := services.NewOrderCompleter(
		orderRepo,
		courseRepo,
		entitlementRepo,
		services.NewLogNotifier(logger),
		logger,
	)
	createService := services.NewCreateOrderService(orderRepo, courseRepo, registry, locker, logger)
	captureService := services.NewCaptureService(orderRepo, registry, completer, logger)
	webhookService := services.NewWebhookService(orderRepo, registry, completer, logger)
	queryService := services.NewQueryService(orderRepo)

	h := handlers.NewHandlers(
		createService,
		captureService,
		webhookService,
		queryService,
		logger,
	)

	validator, err := api.NewValidator(handlers.ValidationFailed)
	if err != nil {
		logger.Error("failed to load api description", "error", err)
		os.Exit(1)
	}

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, logger)
	limiter := middleware.NewRateLimiter(float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Warn("health check failed", "error", err)
			rest.WriteErrorCode(w, http.StatusServiceUnavailable, "UNHEALTHY", "checkout store unreachable")
			return
		}
		rest.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	h.Register(mux, handlers.RouteOptions{
		Auth:           authenticator.Require,
		RateLimit:      limiter.Middleware,
		Validate:       validator.Middleware,
		Timeout:        middleware.Timeout(cfg.Server.WriteTimeout),
		WebhookTimeout: cfg.Server.WebhookTimeout,
	})

	router := http.Handler(mux)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	reconciler := worker.NewReconciler(orderRepo, completer, cfg.Reconciler.BatchSize, cfg.Reconciler.MinAge, logger)
	reconcilerDone, err := reconciler.Start(workerCtx, cfg.Reconciler.Schedule)
	if err != nil {
		logger.Error("invalid reconciler schedule", "schedule", cfg.Reconciler.Schedule, "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	cancelWorkers()
	select {
	case <-reconcilerDone:
	case <-shutdownCtx.Done():
		logger.Warn("reconciler did not stop before shutdown deadline")
	}

	logger.Info("server exited")
}
