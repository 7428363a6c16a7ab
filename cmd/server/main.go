package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocktracker/internal/config"
	"stocktracker/internal/database"
	"stocktracker/internal/handlers"
	"stocktracker/internal/middleware"
	"stocktracker/internal/repositories"
	"stocktracker/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Missing .env is fine; containers inject config through the environment.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, auditRepo, blacklistedTokenRepo, passwordService, tokenService, metrics, logger)
	accountService := services.NewAccountService(accountRepo, holdingRepo, auditRepo, metrics, logger)
	holdingService := services.NewHoldingService(holdingRepo, accountRepo, auditRepo, metrics, logger)
	portfolioService := services.NewPortfolioService(accountRepo, holdingRepo, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	dashboardHandler := handlers.NewDashboardHandler(portfolioService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceIDHeader},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth(tokenService, blacklistedTokenRepo))
	protected.GET("/accounts", accountHandler.ListAccounts)
	protected.POST("/accounts", accountHandler.CreateAccount)
	protected.GET("/accounts/:accountId", accountHandler.GetAccount)
	protected.GET("/accounts/:accountId/holdings", holdingHandler.ListHoldings)
	protected.POST("/accounts/:accountId/holdings", holdingHandler.AddHolding)
	protected.PATCH("/holdings/marks", holdingHandler.SetMarks)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	if !cfg.IsProduction() {
		seedService := services.NewSeedService(accountRepo, holdingRepo, metrics, logger)
		devHandler := handlers.NewDevHandler(seedService)
		protected.POST("/dev/seed", devHandler.SeedDemoData)
		logger.Info("dev seed endpoint enabled", "environment", cfg.Server.Environment)
	}

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}

	logger.Info("server stopped")
}
