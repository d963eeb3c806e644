package main

import (
	"fmt"
	"log"
	"time"

	"golang-storefront-client/configs"
	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/internal/handlers"
	"golang-storefront-client/internal/middleware"
	"golang-storefront-client/internal/services"
	"golang-storefront-client/pkg/auth"
	"golang-storefront-client/pkg/keystore"
	"golang-storefront-client/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	appLogger, err := logger.New(config.Server.Mode)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLogger.Sync()

	// Open the local durable store
	store, err := openStore(config)
	if err != nil {
		appLogger.Fatalw("failed to open local store", "backend", config.Store.Backend, "error", err)
	}
	defer store.Close()

	// Remote API client
	apiClient := gateway.NewClient(config.Remote.BaseURL, time.Duration(config.Remote.TimeoutSeconds)*time.Second)

	// Initialize services
	contentService := services.NewContentService(apiClient, store, appLogger)
	cartService := services.NewCartService(apiClient, appLogger)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(auth.NewSessionParser())

	// Initialize handlers
	contentHandler := handlers.NewContentHandler(contentService)
	cartHandler := handlers.NewCartHandler(cartService)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "golang-storefront-client",
		})
	})

	// API routes
	api := router.Group("/api")

	contentHandler.RegisterRoutes(api, sessionMiddleware)
	cartHandler.RegisterRoutes(api, sessionMiddleware)

	appLogger.Infow("edge server starting", "port", config.Server.Port, "remote", config.Remote.BaseURL, "store", config.Store.Backend)
	if err := router.Run(":" + config.Server.Port); err != nil {
		appLogger.Fatalw("server stopped", "error", err)
	}
}

func openStore(config *configs.Config) (keystore.Store, error) {
	switch config.Store.Backend {
	case "bolt":
		return keystore.NewBoltStore(config.Store.BoltPath)
	case "redis":
		return keystore.NewRedisStore(config.Store.Redis.Addr, config.Store.Redis.Password, config.Store.Redis.DB)
	case "mongo":
		return keystore.NewMongoStore(config.Store.Mongo.URI, config.Store.Mongo.DBName)
	default:
		return nil, fmt.Errorf("unknown store backend %q", config.Store.Backend)
	}
}
