package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pfouda/homebudget-backend/internal/config"
	"github.com/pfouda/homebudget-backend/internal/database"
	"github.com/pfouda/homebudget-backend/internal/handler"
	"github.com/pfouda/homebudget-backend/internal/middleware"
	"github.com/pfouda/homebudget-backend/internal/repository/postgres"
	"github.com/pfouda/homebudget-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	log.Info().Msg("Connected to database")

	// Run migrations
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations applied")

	// Initialize repositories
	budgetRepo := postgres.NewBudgetRepository(pool)
	sectionRepo := postgres.NewSectionRepository(pool)
	budgetItemRepo := postgres.NewBudgetItemRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	salaryRepo := postgres.NewSalaryRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)

	// Initialize services
	budgetService := service.NewBudgetService(budgetRepo)
	sectionService := service.NewSectionService(sectionRepo, budgetRepo)
	budgetItemService := service.NewBudgetItemService(budgetItemRepo, sectionRepo)
	planService := service.NewPlanService(planRepo, budgetItemRepo)
	transactionService := service.NewTransactionService(transactionRepo, sectionRepo, budgetItemRepo)
	importService := service.NewImportService(transactionRepo, sectionRepo, budgetItemRepo)
	salaryService := service.NewSalaryService(salaryRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)

	// Initialize handlers
	budgetHandler := handler.NewBudgetHandler(budgetService)
	sectionHandler := handler.NewSectionHandler(sectionService)
	budgetItemHandler := handler.NewBudgetItemHandler(budgetItemService)
	planHandler := handler.NewPlanHandler(planService)
	transactionHandler := handler.NewTransactionHandler(transactionService, importService)
	salaryHandler := handler.NewSalaryHandler(salaryService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Rate limiting middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit, cfg.RateBurst)
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, budgetHandler, sectionHandler, budgetItemHandler, planHandler, transactionHandler, salaryHandler, subscriptionHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
