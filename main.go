package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seatforge/seatmap-service/internal/di"
	"github.com/seatforge/seatmap-service/internal/service"
	"github.com/seatforge/seatmap-service/pkg/config"
	"github.com/seatforge/seatmap-service/pkg/database"
	"github.com/seatforge/seatmap-service/pkg/kafka"
	"github.com/seatforge/seatmap-service/pkg/logger"
	"github.com/seatforge/seatmap-service/pkg/middleware"
	"github.com/seatforge/seatmap-service/pkg/redis"
	"github.com/seatforge/seatmap-service/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: "seatmap-service",
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Seatmap Service...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    "seatmap-service",
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   1 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis connection (optional - cache and snapshot store
	// degrade if connection fails)
	var redisClient *redis.Client
	redisCfg := &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = redis.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (caching disabled): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Initialize Kafka producer (optional - sync endpoint reports
	// unavailability if the broker is down at boot)
	var producer *kafka.Producer
	producer, err = kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.Kafka.ClientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		BatchSize:     100,
		LingerMs:      10,
	})
	if err != nil {
		appLog.Warn(fmt.Sprintf("Kafka connection failed (sync publishing disabled): %v", err))
		producer = nil
	} else {
		defer producer.Close()
		appLog.Info(fmt.Sprintf("Kafka connected (%v)", cfg.Kafka.Brokers))
	}

	versionPolicy := service.VersionBumpOnRegenerate
	if cfg.Manifest.VersionPolicy == "explicit" {
		versionPolicy = service.VersionBumpExplicit
	}

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		DB:            db,
		Redis:         redisClient,
		Producer:      producer,
		VersionPolicy: versionPolicy,
	})

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add OpenTelemetry tracing middleware if enabled
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware("seatmap-service"))
		router.Use(telemetry.TraceHeaderMiddleware())
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// JWT middleware configuration
	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		SkipPaths: []string{
			"/health",
			"/ready",
		},
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Venues endpoints - public read, authenticated write
		venues := v1.Group("/venues")
		{
			venues.GET("/:id", container.VenueHandler.GetByID)
			venues.GET("/:id/manifests", container.ManifestHandler.ListByVenue)

			protected := venues.Group("")
			protected.Use(middleware.JWTMiddleware(jwtConfig))
			protected.Use(middleware.RequireRole("admin", "organizer"))
			{
				protected.GET("", container.VenueHandler.List)
				protected.POST("", container.VenueHandler.Create)
				protected.PUT("/:id", container.VenueHandler.Update)
				protected.PUT("/:id/sections", container.VenueHandler.UpdateSections)
				protected.DELETE("/:id", container.VenueHandler.Delete)
			}
		}

		// Manifests endpoints
		manifests := v1.Group("/manifests")
		{
			manifests.GET("/:id", container.ManifestHandler.GetByID)

			protected := manifests.Group("")
			protected.Use(middleware.JWTMiddleware(jwtConfig))
			protected.Use(middleware.RequireRole("admin", "organizer"))
			{
				// Generation dedupes retried requests by idempotency key
				// when Redis is available
				generate := protected.Group("")
				if redisClient != nil {
					generate.Use(middleware.IdempotencyMiddleware(middleware.DefaultIdempotencyConfig(redisClient)))
				}
				generate.POST("/generate", container.ManifestHandler.Generate)

				protected.POST("/:id/regenerate", container.ManifestHandler.Regenerate)
				protected.DELETE("/:id", container.ManifestHandler.Delete)
				protected.PUT("/:id/places/:placeId", container.ManifestHandler.UpsertPlace)
				protected.DELETE("/:id/places/:placeId", container.ManifestHandler.DeletePlace)
				protected.POST("/:id/sync", container.ManifestHandler.Sync)
			}
		}
	}

	// Create HTTP server
	port := cfg.Server.Port
	if port == 0 {
		port = 8084
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Seatmap Service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
