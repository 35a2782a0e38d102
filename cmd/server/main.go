package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ErlanBelekov/task-manager-api/config"
	"github.com/ErlanBelekov/task-manager-api/internal/auth"
	"github.com/ErlanBelekov/task-manager-api/internal/email"
	"github.com/ErlanBelekov/task-manager-api/internal/health"
	"github.com/ErlanBelekov/task-manager-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/task-manager-api/internal/log"
	"github.com/ErlanBelekov/task-manager-api/internal/metrics"
	"github.com/ErlanBelekov/task-manager-api/internal/stats"
	httptransport "github.com/ErlanBelekov/task-manager-api/internal/transport/http"
	"github.com/ErlanBelekov/task-manager-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-manager-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	metrics.Register()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger, cfg.SlowQueryThreshold())
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.AccessTokenTTL())
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, auth.SystemClock{})
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Users
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, sender, logger, cfg.MaxPageLimit)
	userHandler := handler.NewUserHandler(userUsecase, logger)

	// Tasks
	taskUsecase := usecase.NewTaskUsecase(taskRepo, cfg.MaxPageLimit)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	router, err := httptransport.NewRouter(logger, httptransport.Handlers{
		Auth: authHandler,
		User: userHandler,
		Task: taskHandler,
	}, authUsecase)
	if err != nil {
		stop()
		log.Fatalf("router: %v", err)
	}

	checker := health.NewChecker(map[string]health.Pinger{"postgres": pool}, logger, prometheus.DefaultRegisterer)

	collector, err := stats.NewCollector(taskRepo, userRepo, cfg.StatsCron, logger, prometheus.DefaultRegisterer)
	if err != nil {
		stop()
		log.Fatalf("stats: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		collector.Start(ctx)
	}()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	wg.Wait()
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
