package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subtrack/internal/analytics"
	"subtrack/internal/caching"
	"subtrack/internal/config"
	"subtrack/internal/handlers"
	"subtrack/internal/middleware"
	"subtrack/internal/repositories"
	"subtrack/internal/services"
	"subtrack/pkg/database"
	"subtrack/pkg/logger"

	_ "subtrack/docs"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog/log"
	echoswagger "github.com/swaggo/echo-swagger"
)

// @title Subscription Tracker API
// @version 1.0
// @description Subscription management for software resale.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = random.String(32, random.Alphanumeric)
		log.Warn().Msg("JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cache := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	storage, err := services.NewMinioStorageService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Str("bucket", cfg.Minio.Bucket).Msg("could not ensure icon bucket exists")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	resellerRepo := repositories.NewResellerRepository(pool)
	softwareRepo := repositories.NewSoftwareRepository(pool)
	subscriptionRepo := repositories.NewSubscriptionRepository(pool)
	reminderRepo := repositories.NewEmailReminderRepository(pool)

	// Services
	authService := services.NewAuthService(userRepo, cache, jwtSecret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLMinutes)*time.Minute)
	customerService := services.NewCustomerService(customerRepo)
	resellerService := services.NewResellerService(resellerRepo)
	softwareService := services.NewSoftwareService(softwareRepo, cache)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, resellerRepo)
	reminderService := services.NewReminderService(reminderRepo, subscriptionRepo)
	analyticsService := analytics.NewAnalyticsService(subscriptionRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	customerHandlers := handlers.NewCustomerHandlers(customerService)
	resellerHandlers := handlers.NewResellerHandlers(resellerService)
	softwareHandlers := handlers.NewSoftwareHandlers(softwareService, storage)
	subscriptionHandlers := handlers.NewSubscriptionHandlers(subscriptionService, reminderService)
	dashboardHandlers := handlers.NewDashboardHandlers(analyticsService)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))

	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/swagger/*", echoswagger.WrapHandler)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)

	protected := api.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	protected.Use(middleware.UserContext())

	protected.GET("/auth/user", authHandlers.CurrentUser)

	protected.GET("/dashboard/metrics", dashboardHandlers.GetMetrics)

	protected.GET("/customers", customerHandlers.ListCustomers)
	protected.POST("/customers", customerHandlers.CreateCustomer)
	protected.GET("/customers/:id", customerHandlers.GetCustomer)
	protected.PUT("/customers/:id", customerHandlers.UpdateCustomer)
	protected.DELETE("/customers/:id", customerHandlers.DeleteCustomer)

	protected.GET("/resellers", resellerHandlers.ListResellers)
	protected.POST("/resellers", resellerHandlers.CreateReseller)
	protected.GET("/resellers/:id", resellerHandlers.GetReseller)
	protected.PUT("/resellers/:id", resellerHandlers.UpdateReseller)
	protected.DELETE("/resellers/:id", resellerHandlers.DeleteReseller)

	protected.GET("/software", softwareHandlers.ListSoftware)
	protected.POST("/software", softwareHandlers.CreateSoftware)
	protected.GET("/software/:id", softwareHandlers.GetSoftware)
	protected.PUT("/software/:id", softwareHandlers.UpdateSoftware)
	protected.DELETE("/software/:id", softwareHandlers.DeleteSoftware)
	protected.POST("/software/:id/icon", softwareHandlers.UploadIcon)

	// The expiring route must be registered before /:id so "expiring" is not
	// read as a subscription ID.
	protected.GET("/subscriptions/expiring/:days", subscriptionHandlers.ListExpiring)
	protected.GET("/subscriptions", subscriptionHandlers.ListSubscriptions)
	protected.POST("/subscriptions", subscriptionHandlers.CreateSubscription)
	protected.GET("/subscriptions/:id", subscriptionHandlers.GetSubscription)
	protected.PUT("/subscriptions/:id", subscriptionHandlers.UpdateSubscription)
	protected.DELETE("/subscriptions/:id", subscriptionHandlers.DeleteSubscription)
	protected.POST("/subscriptions/:id/reminders", subscriptionHandlers.RecordReminder)
	protected.GET("/subscriptions/:id/reminders", subscriptionHandlers.ListReminders)

	go func() {
		if err := e.Start(cfg.HTTP.Addr()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
