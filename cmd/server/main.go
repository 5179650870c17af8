package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skyfence/internal/config"
	"skyfence/internal/handlers"
	"skyfence/internal/middleware"
	mongorepo "skyfence/internal/repositories/mongodb"
	"skyfence/internal/services"
	"skyfence/pkg/cache"
	"skyfence/pkg/database"
	"skyfence/pkg/logger"
	"skyfence/pkg/websocket"
	"skyfence/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Repositories
	zoneRepo := mongorepo.NewZoneRepository(db.Database, redisCache)
	scheduleRepo := mongorepo.NewScheduleRepository(db.Database)

	// Services
	zoneService := services.NewZoneService(zoneRepo, appLogger)
	scheduleService := services.NewScheduleService(scheduleRepo, appLogger)

	// WebSocket drawing sessions
	wsHandler := websocket.NewHandler(zoneService)

	// HTTP handlers
	zoneHandler := handlers.NewZoneHandler(zoneService, wsHandler)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RateLimitMiddleware(redisCache, cfg.Security.RateLimitPerMinute))

	v1 := router.Group("/api/v1")
	{
		routes.SetupZoneRoutes(v1, zoneHandler, cfg.Security.JWTSecret)
		routes.SetupScheduleRoutes(v1, scheduleHandler, cfg.Security.JWTSecret)
		routes.SetupDrawingRoutes(v1, wsHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		c.JSON(status, gin.H{
			"status":   "healthy",
			"version":  cfg.App.Version,
			"database": dbStatus,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting %s on %s", cfg.App.Name, addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server stopped: %v", err)
	}
}
