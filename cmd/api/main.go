package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/savithru/pms-backend/internal/adapters/primary/http"
	mw "github.com/savithru/pms-backend/internal/adapters/primary/http/middleware"
	"github.com/savithru/pms-backend/internal/adapters/primary/websocket"
	"github.com/savithru/pms-backend/internal/adapters/secondary/email"
	"github.com/savithru/pms-backend/internal/adapters/secondary/postgres"
	"github.com/savithru/pms-backend/internal/adapters/secondary/render"
	"github.com/savithru/pms-backend/internal/auth"
	"github.com/savithru/pms-backend/internal/config"
	"github.com/savithru/pms-backend/internal/core/services"
	"github.com/savithru/pms-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 4. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)

	registry := websocket.NewRegistry(logger)
	dispatcher := websocket.NewDispatcher(registry, logger)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	go dispatcher.Run(dispatcherCtx)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		authRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.AuthRPS,
			BurstSize:         cfg.RateLimit.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	workUpdateRepo := postgres.NewWorkUpdateRepository(pool)
	updateRepo := postgres.NewUpdateRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	dailyUpdateRepo := postgres.NewDailyUpdateRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	// Notifier & Renderer (Secondary Adapters)
	mailer := email.NewMockSMTPNotifierWithLogger(cfg.Email.From, logger)
	renderer := render.NewTemplateRenderer()

	// Event Publisher
	publisher := services.NewEventPublisher(dispatcher, renderer, logger)

	// Services (Core)
	authService := services.NewAuthService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, publisher)
	projectService := services.NewProjectService(projectRepo, workUpdateRepo, userRepo, notificationService, mailer, logger)
	updateService := services.NewUpdateService(updateRepo, projectRepo, userRepo, notificationService, publisher, logger)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, notificationService, logger)
	issueService := services.NewIssueService(issueRepo, userRepo, notificationService, logger)
	dailyUpdateService := services.NewDailyUpdateService(dailyUpdateRepo, userRepo)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	updateHandler := httpAdapter.NewUpdateHandler(updateService, errorHandler, logger)
	taskHandler := httpAdapter.NewTaskHandler(taskService, errorHandler, logger)
	projectHandler := httpAdapter.NewProjectHandler(projectService, updateHandler, taskHandler, errorHandler, logger)
	issueHandler := httpAdapter.NewIssueHandler(issueService, errorHandler, logger)
	dailyUpdateHandler := httpAdapter.NewDailyUpdateHandler(dailyUpdateService, errorHandler, logger)
	notificationHandler := httpAdapter.NewNotificationHandler(notificationService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(registry, tokenManager, projectService, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, registry, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.WebSocket.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authRateLimiter != nil {
				r.Use(authRateLimiter.Middleware)
			}
			authHandler.RegisterPublicRoutes(r)
		})

		// WebSocket routes (authentication is handled inside the handler)
		r.Route("/ws", wsHandler.RegisterRoutes)

		// Protected REST routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			authHandler.RegisterProtectedRoutes(r)
			r.Route("/projects", projectHandler.RegisterRoutes)
			r.Route("/tasks", taskHandler.RegisterRoutes)
			r.Route("/issues", issueHandler.RegisterRoutes)
			r.Route("/daily-updates", dailyUpdateHandler.RegisterRoutes)
			r.Route("/notifications", notificationHandler.RegisterRoutes)
		})
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop the fan-out loop, then wait for in-flight background work.
	stopDispatcher()
	projectService.Shutdown()

	logger.Info("server stopped")
}
